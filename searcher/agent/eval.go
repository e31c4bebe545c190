package agent

import (
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"

	"golang.org/x/exp/rand"
)

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent that plays the searcher's moves.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(state game.State, timeLeft searcher.TimeLeft) (game.Move, metrics.SearchMetric) {
	legalMoves := state.LegalMoves(state.ActivePlayer())
	return a.searcher.FindMove(state, legalMoves, timeLeft)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal
// moves. The same seed replays the same choices.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.State, _ searcher.TimeLeft) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves(state.ActivePlayer())
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Algorithm: "random"}
}
