package experiments

import (
	"isolation/config"
	"isolation/experiments/metrics"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the games of one agent and, for search agents, the
// depth and speed of their searches.
type Summary struct {
	Agent          metrics.AgentConfig
	Games          int
	Wins           int
	WinRate        float64
	Moves          int     // Moves chosen by search, excluding opening book moves
	MeanDepth      float64 // Deepest completed depth per searched move
	StdDepth       float64
	NodesPerSecond float64
}

// Summarize computes a Summary for every agent, in the order given.
func Summarize(agents []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) []Summary {
	return lo.Map(agents, func(a metrics.AgentConfig, _ int) Summary {
		s := Summary{Agent: a}
		for _, g := range games {
			if g.Agent1 != a.ID && g.Agent2 != a.ID {
				continue
			}
			s.Games++
			if g.WinnerAgent == a.ID {
				s.Wins++
			}
		}
		if s.Games > 0 {
			s.WinRate = float64(s.Wins) / float64(s.Games)
		}

		if a.Kind != config.KindSearch {
			return s
		}
		searched := lo.Filter(moves, func(m metrics.MoveRecord, _ int) bool {
			return m.Agent == a.ID && !m.Opening
		})
		s.Moves = len(searched)
		if s.Moves == 0 {
			return s
		}

		depths := lo.Map(searched, func(m metrics.MoveRecord, _ int) float64 {
			return float64(m.Depth)
		})
		if s.Moves > 1 {
			s.MeanDepth, s.StdDepth = stat.MeanStdDev(depths, nil)
		} else {
			s.MeanDepth = depths[0]
		}

		nodes := lo.SumBy(searched, func(m metrics.MoveRecord) int { return m.Nodes })
		elapsed := lo.SumBy(searched, func(m metrics.MoveRecord) float64 { return m.Duration.Seconds() })
		if elapsed > 0 {
			s.NodesPerSecond = float64(nodes) / elapsed
		}
		return s
	})
}
