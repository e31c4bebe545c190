package agent

import (
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

type Agent interface {
	// FindMove returns the move for the active player of state and the
	// metrics of the search (if collected). It returns game.NoMove when the
	// active player is stuck.
	FindMove(state game.State, timeLeft searcher.TimeLeft) (game.Move, metrics.SearchMetric)
}
