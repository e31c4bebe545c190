package experiments

import (
	"context"
	"fmt"
	"time"

	"isolation/config"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
	"isolation/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	Player1 = game.Player("player1")
	Player2 = game.Player("player2")
)

type gameJob struct {
	id      int
	matchup int
	first   metrics.AgentConfig // Moves first as Player1
	second  metrics.AgentConfig
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

// Run plays cfg.NumGames games for every matchup, alternating which agent
// moves first, writes the records under cfg.OutputDir and returns a summary
// per agent.
func Run(ctx context.Context, cfg *config.Config) ([]Summary, error) {
	jobs, err := schedule(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("starting %s with %d games over %d matchups...", cfg.Name, len(jobs), len(cfg.Matchups))
	startTime := time.Now()

	results := make([]gameResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i, job := range jobs {
		i, job := i, job // per-iteration copies (go.mod targets go 1.21)
		g.Go(func() error {
			result, err := runGame(ctx, cfg, job)
			if err != nil {
				return fmt.Errorf("game %d: %w", job.id, err)
			}
			results[i] = result
			log.Info().Msgf("completed matchup %d of %d game %d: %s beat %s",
				job.matchup+1, len(cfg.Matchups), job.id,
				nameOf(job, result.record.WinnerAgent), nameOf(job, loserOf(job, result.record.WinnerAgent)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	endTime := time.Now()
	log.Info().Msgf("completed %s in %v", cfg.Name, endTime.Sub(startTime))

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, r.record)
		moveRecords = append(moveRecords, r.moves...)
	}

	setup := metrics.Setup{
		Name:      cfg.Name,
		NumGames:  cfg.NumGames,
		TimeLimit: cfg.TimeLimit.String(),
		Timeout:   cfg.Timeout.String(),
		Height:    cfg.Height,
		Width:     cfg.Width,
		Matchups:  cfg.Matchups,
		StartTime: startTime.Format(time.RFC3339),
		EndTime:   endTime.Format(time.RFC3339),
		Duration:  endTime.Sub(startTime).String(),
	}
	if err := store(cfg, setup, gameRecords, moveRecords); err != nil {
		return nil, err
	}

	summaries := Summarize(cfg.Agents, gameRecords, moveRecords)
	for _, s := range summaries {
		if s.Games == 0 {
			continue
		}
		log.Info().
			Str("agent", s.Agent.Name).
			Int("games", s.Games).
			Int("wins", s.Wins).
			Float64("win_rate", s.WinRate).
			Float64("mean_depth", s.MeanDepth).
			Float64("std_depth", s.StdDepth).
			Float64("nodes_per_second", s.NodesPerSecond).
			Msg("agent summary")
	}
	return summaries, nil
}

// schedule lays out every game of the tournament in order.
func schedule(cfg *config.Config) ([]gameJob, error) {
	jobs := []gameJob{}
	for mi, matchup := range cfg.Matchups {
		a, ok := cfg.Agent(matchup[0])
		if !ok {
			return nil, fmt.Errorf("%w: unknown agent %d", config.ErrInvalidConfig, matchup[0])
		}
		b, ok := cfg.Agent(matchup[1])
		if !ok {
			return nil, fmt.Errorf("%w: unknown agent %d", config.ErrInvalidConfig, matchup[1])
		}
		for i := 0; i < cfg.NumGames; i++ {
			job := gameJob{id: len(jobs) + 1, matchup: mi, first: a, second: b}
			if i%2 == 1 {
				job.first, job.second = b, a
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func runGame(ctx context.Context, cfg *config.Config, job gameJob) (gameResult, error) {
	seed := cfg.Seed + uint64(job.id)*2
	first, err := NewAgent(cfg, job.first, seed)
	if err != nil {
		return gameResult{}, err
	}
	second, err := NewAgent(cfg, job.second, seed+1)
	if err != nil {
		return gameResult{}, err
	}

	board := game.NewBoard(Player1, Player2, cfg.Width, cfg.Height)
	e := engine.LocalEngine(board, []agent.Agent{first, second}, cfg.TimeLimit)
	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return gameResult{}, err
	}

	agentOf := func(p game.Player) int {
		if p == Player1 {
			return job.first.ID
		}
		return job.second.ID
	}
	result := gameResult{
		record: metrics.GameRecord{
			ID:          job.id,
			Agent1:      job.first.ID,
			Agent2:      job.second.ID,
			WinnerAgent: agentOf(winner),
			GameMetric:  gameMetric,
		},
		moves: make([]metrics.MoveRecord, 0, len(moveMetrics)),
	}
	for _, mm := range moveMetrics {
		result.moves = append(result.moves, metrics.MoveRecord{
			Game:       job.id,
			Agent:      agentOf(mm.Player),
			MoveMetric: mm,
		})
	}
	return result, nil
}

// NewAgent builds a fresh agent for one game so no search state is shared
// between concurrent games.
func NewAgent(cfg *config.Config, ac metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	switch ac.Kind {
	case config.KindRandom:
		return agent.NewRandomAgent(seed), nil
	case config.KindRemote:
		return agent.NewRemoteAgent(ac.URL), nil
	case config.KindSearch:
		options := []searcher.Option{
			searcher.WithDepth(ac.Depth),
			searcher.WithEvaluatorName(ac.Evaluator),
			searcher.WithIterative(ac.Iterative),
			searcher.WithTimeout(cfg.Timeout),
			searcher.WithMetrics(),
		}
		if ac.Algorithm != "" {
			options = append(options, searcher.WithAlgorithm(ac.Algorithm))
		}
		s, err := searcher.New(options...)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", ac.ID, err)
		}
		return agent.NewSearchAgent(s), nil
	}
	return nil, fmt.Errorf("%w: agent %d has unknown kind %q", config.ErrInvalidConfig, ac.ID, ac.Kind)
}

func store(cfg *config.Config, setup metrics.Setup, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteSetup(setup); err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

func nameOf(job gameJob, id int) string {
	if id == job.first.ID {
		return job.first.Name
	}
	return job.second.Name
}

func loserOf(job gameJob, winner int) int {
	if winner == job.first.ID {
		return job.second.ID
	}
	return job.first.ID
}
