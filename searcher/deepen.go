package searcher

import (
	"errors"
	"isolation/game"
	"math"

	"github.com/rs/zerolog/log"
)

type rootSearch func(s *search, state game.State, depth int) (Result, error)

var algorithms = map[Algorithm]rootSearch{
	Minimax: func(s *search, state game.State, depth int) (Result, error) {
		return s.minimax(state, depth, true)
	},
	AlphaBeta: func(s *search, state game.State, depth int) (Result, error) {
		return s.alphabeta(state, depth, math.Inf(-1), math.Inf(1), true)
	},
}

// Search runs the configured algorithm once at the given depth.
func (s *Searcher) Search(state game.State, depth int, budget Budget) (Result, error) {
	return algorithms[s.algorithm](s.newSearch(budget), state, depth)
}

func (s *Searcher) newSearch(budget Budget) *search {
	return &search{
		evaluator: s.evaluator,
		budget:    budget,
		metrics:   s.metrics,
	}
}

// deepen searches at depth 1, 2, ... up to the configured depth, or without
// bound when the depth is not positive, and keeps the result of the deepest
// search that completed. It returns false if no depth completed.
func (s *Searcher) deepen(state game.State, budget Budget) (Result, bool) {
	run := algorithms[s.algorithm]
	var best Result
	completed := 0

	for depth := 1; s.depth <= 0 || depth <= s.depth; depth++ {
		tree := s.newSearch(budget)
		result, err := run(tree, state, depth)
		if err != nil {
			if errors.Is(err, ErrTimeExceeded) {
				s.metrics.SetTimedOut()
			}
			log.Debug().Err(err).Msgf("depth %d aborted, keeping depth %d", depth, completed)
			break
		}

		best, completed = result, depth
		s.metrics.CompleteDepth(depth)
		log.Debug().Msgf("completed depth %d: move %v with score %v", depth, result.Move, result.Score)

		// Every branch ended before the depth limit, deeper searches
		// would see the same tree.
		if tree.cutoffs == 0 {
			break
		}
	}

	return best, completed > 0
}
