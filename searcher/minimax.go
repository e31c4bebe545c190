package searcher

import (
	"isolation/experiments/metrics"
	"isolation/game"
)

// search holds what a single depth-limited search needs. A new one is built
// for every depth of the deepening loop.
type search struct {
	evaluator game.Evaluator
	budget    Budget
	metrics   metrics.Collector
	cutoffs   int // Leaves scored at the depth limit rather than at the end of the game
}

// enter is called first by every recursive frame.
func (s *search) enter() error {
	if s.budget.Exceeded() {
		return ErrTimeExceeded
	}
	s.metrics.AddNode()
	return nil
}

func (s *search) leaf(state game.State, maximizing bool) Result {
	s.cutoffs++
	return Result{Score: leafScore(s.evaluator, state, maximizing), Move: game.NoMove}
}

// minimax returns the best score reachable from state within depth plies
// together with the move leading to it. Ties go to the first move in the
// state's move order.
func (s *search) minimax(state game.State, depth int, maximizing bool) (Result, error) {
	if err := s.enter(); err != nil {
		return Result{}, err
	}

	moves := state.LegalMoves(state.ActivePlayer())
	if len(moves) == 0 {
		return Result{Score: 0, Move: game.NoMove}, nil
	}
	if depth <= 0 {
		return s.leaf(state, maximizing), nil
	}

	var best Result
	for i, move := range moves {
		child, err := s.minimax(state.ForecastMove(move), depth-1, !maximizing)
		if err != nil {
			return Result{}, err
		}
		if i == 0 ||
			(maximizing && child.Score > best.Score) ||
			(!maximizing && child.Score < best.Score) {
			best = Result{Score: child.Score, Move: move}
		}
	}
	return best, nil
}
