package game

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator scores a state from the given player's perspective; higher is
// better for that player. Implementations only read the state.
type Evaluator interface {
	Score(s State, p Player) float64
}

// EvaluatorFunc adapts a plain function to an Evaluator.
type EvaluatorFunc func(s State, p Player) float64

func (f EvaluatorFunc) Score(s State, p Player) float64 {
	return f(s, p)
}

// Mobility weighs the player's own move count against the opponent's.
type Mobility struct {
	Own float64
	Opp float64
}

var (
	// AggressiveDiff punishes opponent mobility twice as hard as it rewards our own
	AggressiveDiff = Mobility{Own: 1, Opp: 2}
	// SafeDiff rewards our own mobility twice as much as it punishes the opponent's
	SafeDiff = Mobility{Own: 2, Opp: 1}
)

func (m Mobility) Score(s State, p Player) float64 {
	own := float64(len(s.LegalMoves(p)))
	opp := float64(len(s.LegalMoves(s.Opponent(p))))
	return m.Own*own - m.Opp*opp
}

// Centrality favours being close to the center of the board while the
// opponent is far from it.
type Centrality struct{}

const minCenterDistance = 0.5

func (Centrality) Score(s State, p Player) float64 {
	own, ok := s.Location(p)
	if !ok {
		return 1
	}
	opp, ok := s.Location(s.Opponent(p))
	if !ok {
		return 1
	}

	rowCenter := float64(s.Height()) / 2
	colCenter := float64(s.Width()) / 2
	ownDist := math.Max(minCenterDistance, sqDistance(own, rowCenter, colCenter))
	oppDist := math.Max(minCenterDistance, sqDistance(opp, rowCenter, colCenter))

	return oppDist / ownDist
}

func sqDistance(m Move, row, col float64) float64 {
	dr := float64(m.Row) - row
	dc := float64(m.Col) - col
	return dr*dr + dc*dc
}

// CenterPlusSafe adds the square root of Centrality to SafeDiff. The two
// terms are on different scales on purpose.
type CenterPlusSafe struct{}

func (CenterPlusSafe) Score(s State, p Player) float64 {
	return SafeDiff.Score(s, p) + math.Sqrt(Centrality{}.Score(s, p))
}

// Evaluator names accepted by ParseEvaluator.
const (
	EvalAggressive     = "aggressive"
	EvalSafe           = "safe"
	EvalCenter         = "center"
	EvalCenterPlusSafe = "center_plus_safe"
)

// DefaultEvaluator is the evaluator used when none is configured.
const DefaultEvaluator = EvalCenterPlusSafe

var evaluators = map[string]Evaluator{
	EvalAggressive:     AggressiveDiff,
	EvalSafe:           SafeDiff,
	EvalCenter:         Centrality{},
	EvalCenterPlusSafe: CenterPlusSafe{},
}

// ParseEvaluator returns the evaluator registered under name.
func ParseEvaluator(name string) (Evaluator, error) {
	if name == "" {
		name = DefaultEvaluator
	}
	e, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
	}
	return e, nil
}

// EvaluatorName returns the registered name of e, or "custom".
func EvaluatorName(e Evaluator) string {
	for name, registered := range evaluators {
		if registered == e {
			return name
		}
	}
	return "custom"
}
