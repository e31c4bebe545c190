package searcher

import (
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Defaults used when no option overrides them.
const (
	DefaultDepth     = 3
	DefaultTimeout   = 10 * time.Millisecond
	DefaultAlgorithm = Minimax
)

type Option func(s *Searcher) error

// Searcher picks moves with depth-limited minimax or alpha-beta search under
// a per-move time budget. It runs one search at a time.
type Searcher struct {
	depth     int // <= 0 deepens until the budget runs out
	evaluator game.Evaluator
	iterative bool
	algorithm Algorithm
	timeout   time.Duration // Minimum time left below which a search aborts
	metrics   metrics.Collector
}

// WithDepth sets the deepest search depth. Zero or negative searches ever
// deeper until time runs out.
func WithDepth(depth int) Option {
	return func(s *Searcher) error {
		s.depth = depth
		return nil
	}
}

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(s *Searcher) error {
		if evaluator == nil {
			return fmt.Errorf("%w: nil", game.ErrUnknownEvaluator)
		}
		s.evaluator = evaluator
		return nil
	}
}

// WithEvaluatorName selects a registered evaluator, see game.ParseEvaluator.
func WithEvaluatorName(name string) Option {
	return func(s *Searcher) error {
		evaluator, err := game.ParseEvaluator(name)
		if err != nil {
			return err
		}
		s.evaluator = evaluator
		return nil
	}
}

func WithIterative(iterative bool) Option {
	return func(s *Searcher) error {
		s.iterative = iterative
		return nil
	}
}

// WithAlgorithm selects "minimax" or "alphabeta".
func WithAlgorithm(name string) Option {
	return func(s *Searcher) error {
		algorithm, err := ParseAlgorithm(name)
		if err != nil {
			return err
		}
		s.algorithm = algorithm
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout < 0 {
			return fmt.Errorf("negative search timeout %v", timeout)
		}
		s.timeout = timeout
		return nil
	}
}

func WithMetrics() Option {
	return func(s *Searcher) error {
		s.metrics = metrics.NewCollector()
		return nil
	}
}

func New(options ...Option) (*Searcher, error) {
	s := &Searcher{ // Default values
		depth:     DefaultDepth,
		evaluator: game.CenterPlusSafe{},
		iterative: true,
		algorithm: DefaultAlgorithm,
		timeout:   DefaultTimeout,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, fmt.Errorf("invalid searcher configuration: %w", err)
		}
	}
	return s, nil
}

func (s *Searcher) Algorithm() Algorithm      { return s.algorithm }
func (s *Searcher) Evaluator() game.Evaluator { return s.evaluator }
func (s *Searcher) Depth() int                { return s.depth }
func (s *Searcher) Iterative() bool           { return s.iterative }
func (s *Searcher) Timeout() time.Duration    { return s.timeout }

// GetMove returns the move to play from state. It returns game.NoMove when
// legalMoves is empty, or when not even a depth one search fits in the time
// left.
func (s *Searcher) GetMove(state game.State, legalMoves []game.Move, timeLeft TimeLeft) game.Move {
	move, _ := s.FindMove(state, legalMoves, timeLeft)
	return move
}

// FindMove is GetMove also returning the metrics of the search, which are
// empty unless the searcher was built WithMetrics.
func (s *Searcher) FindMove(state game.State, legalMoves []game.Move, timeLeft TimeLeft) (game.Move, metrics.SearchMetric) {
	s.metrics.Start(s.algorithm.String(), game.EvaluatorName(s.evaluator))
	move := s.findMove(state, legalMoves, NewBudget(timeLeft, s.timeout))
	return move, s.metrics.Complete()
}

func (s *Searcher) findMove(state game.State, legalMoves []game.Move, budget Budget) game.Move {
	if len(legalMoves) == 0 {
		return game.NoMove
	}

	if move, ok := openingMove(state); ok {
		s.metrics.SetOpening()
		return move
	}

	result, ok := s.deepen(state, budget)
	if !ok {
		log.Warn().Msgf("no search depth completed for player %s, returning no move", state.ActivePlayer())
		return game.NoMove
	}
	return result.Move
}

// openingMove places an unplaced player in the center of the board, or one
// row above it when the center is taken.
func openingMove(state game.State) (game.Move, bool) {
	player := state.ActivePlayer()
	if _, placed := state.Location(player); placed {
		return game.NoMove, false
	}

	legal := state.LegalMoves(player)
	center := game.Move{Row: state.Height() / 2, Col: state.Width() / 2}
	if lo.Contains(legal, center) {
		return center, true
	}
	above := game.Move{Row: center.Row - 1, Col: center.Col}
	if lo.Contains(legal, above) {
		return above, true
	}
	return game.NoMove, false
}
