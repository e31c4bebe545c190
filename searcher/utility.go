package searcher

import "isolation/game"

// leafScore scores a cutoff state for the player being maximized: the
// player to move on maximizing layers, their opponent otherwise. A decided
// game always reports its utility, whatever the evaluator says.
func leafScore(evaluator game.Evaluator, state game.State, maximizing bool) float64 {
	player := state.ActivePlayer()
	if !maximizing {
		player = state.Opponent(player)
	}

	if utility := state.Utility(player); utility != 0 {
		return utility
	}
	return evaluator.Score(state, player)
}
