package searcher

import (
	"isolation/experiments/metrics"
	"isolation/game"
)

const (
	p1 = game.Player("player1")
	p2 = game.Player("player2")
)

// calls counts how often a mock tree was expanded.
type calls struct {
	legalMoves int
	forecasts  int
}

// mockState is a hand-built game tree. Children are keyed by the move that
// leads to them; value is what mockEvaluator reports for each player.
type mockState struct {
	active   game.Player
	moves    []game.Move
	children map[game.Move]*mockState
	utility  map[game.Player]float64
	value    map[game.Player]float64
	unplaced bool
	calls    *calls
}

func (m *mockState) Height() int                 { return 7 }
func (m *mockState) Width() int                  { return 7 }
func (m *mockState) ActivePlayer() game.Player   { return m.active }
func (m *mockState) InactivePlayer() game.Player { return m.Opponent(m.active) }

func (m *mockState) Opponent(p game.Player) game.Player {
	if p == p1 {
		return p2
	}
	return p1
}

func (m *mockState) Location(p game.Player) (game.Move, bool) {
	if m.unplaced {
		return game.NoMove, false
	}
	return game.Move{}, true
}

func (m *mockState) LegalMoves(p game.Player) []game.Move {
	if m.calls != nil {
		m.calls.legalMoves++
	}
	if p != m.active {
		return nil
	}
	return m.moves
}

func (m *mockState) ForecastMove(move game.Move) game.State {
	if m.calls != nil {
		m.calls.forecasts++
	}
	return m.children[move]
}

func (m *mockState) Utility(p game.Player) float64 {
	return m.utility[p]
}

var mockEvaluator = game.EvaluatorFunc(func(s game.State, p game.Player) float64 {
	return s.(*mockState).value[p]
})

// leafMove keeps leaves non-terminal; leaves are never expanded.
var leafMove = game.Move{Row: 9, Col: 9}

// tree builds a two ply tree rooted at p1. Each inner slice holds the leaf
// values of one child of the root, as seen by p1.
func tree(leaves [][]float64, c *calls) *mockState {
	root := &mockState{active: p1, children: map[game.Move]*mockState{}, calls: c}
	for i, values := range leaves {
		move := game.Move{Row: 0, Col: i}
		child := &mockState{active: p2, children: map[game.Move]*mockState{}, calls: c}
		for j, v := range values {
			leafKey := game.Move{Row: 1, Col: j}
			child.moves = append(child.moves, leafKey)
			child.children[leafKey] = &mockState{
				active: p1,
				moves:  []game.Move{leafMove},
				value:  map[game.Player]float64{p1: v, p2: -v},
				calls:  c,
			}
		}
		root.moves = append(root.moves, move)
		root.children[move] = child
	}
	return root
}

func newTestSearch(evaluator game.Evaluator, budget Budget) *search {
	return &search{
		evaluator: evaluator,
		budget:    budget,
		metrics:   metrics.NewCollector(),
	}
}

func nodes(s *search) int {
	return s.metrics.Complete().Nodes
}
