package searcher

import (
	"isolation/game"
	"math"
)

// alphabeta is minimax with alpha-beta pruning. alpha is the score the
// maximizer is already guaranteed, beta the score the minimizer is already
// guaranteed; the root call uses -Inf and +Inf.
//
// On a cutoff the move that caused it is returned right away, which is not
// necessarily the best move of the subtree.
func (s *search) alphabeta(state game.State, depth int, alpha, beta float64, maximizing bool) (Result, error) {
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

	best := Result{Score: math.Inf(-1), Move: moves[0]}
	if !maximizing {
		best.Score = math.Inf(1)
	}

	for _, move := range moves {
		child, err := s.alphabeta(state.ForecastMove(move), depth-1, alpha, beta, !maximizing)
		if err != nil {
			return Result{}, err
		}
		value := child.Score

		if maximizing {
			if value > best.Score {
				best = Result{Score: value, Move: move}
			}
			if value >= beta {
				return Result{Score: value, Move: move}, nil
			}
			alpha = math.Max(alpha, best.Score)
		} else {
			if value < best.Score {
				best = Result{Score: value, Move: move}
			}
			if best.Score <= alpha {
				return Result{Score: value, Move: move}, nil
			}
			beta = math.Min(beta, best.Score)
		}
	}
	return best, nil
}
