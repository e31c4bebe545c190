package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	KindSearch = "search"
	KindRandom = "random"
	KindRemote = "remote"
)

// Config describes a tournament. Every field can be overridden with an
// ISOLATION_ prefixed environment variable, e.g. ISOLATION_NUM_GAMES.
type Config struct {
	Name      string                `mapstructure:"name"`
	NumGames  int                   `mapstructure:"num_games"` // Per matchup
	TimeLimit time.Duration         `mapstructure:"time_limit"`
	Timeout   time.Duration         `mapstructure:"timeout"`
	Height    int                   `mapstructure:"height"`
	Width     int                   `mapstructure:"width"`
	Parallel  int                   `mapstructure:"parallel"`
	OutputDir string                `mapstructure:"output_dir"`
	Seed      uint64                `mapstructure:"seed"`
	Agents    []metrics.AgentConfig `mapstructure:"agents"`
	Matchups  [][]int               `mapstructure:"matchups"` // Pairs of agent IDs
}

// DefaultAgents pits the custom iterative deepening agent against a random
// player and fixed-depth baselines.
func DefaultAgents() []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 0, Name: "ID_Custom", Kind: KindSearch, Iterative: true, Evaluator: game.EvalCenterPlusSafe, Algorithm: "alphabeta"},
		{ID: 1, Name: "Random", Kind: KindRandom},
		{ID: 2, Name: "MM_Improved", Kind: KindSearch, Depth: 3, Evaluator: game.EvalSafe, Algorithm: "minimax"},
		{ID: 3, Name: "AB_Improved", Kind: KindSearch, Depth: 5, Evaluator: game.EvalSafe, Algorithm: "alphabeta"},
		{ID: 4, Name: "ID_Aggressive", Kind: KindSearch, Iterative: true, Evaluator: game.EvalAggressive, Algorithm: "alphabeta"},
	}
}

// DefaultMatchups pairs the first agent against every other agent.
func DefaultMatchups(agents []metrics.AgentConfig) [][]int {
	if len(agents) == 0 {
		return nil
	}
	return lo.Map(agents[1:], func(a metrics.AgentConfig, _ int) []int {
		return []int{agents[0].ID, a.ID}
	})
}

// Load reads the config at path, if any, on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("name", "tournament")
	v.SetDefault("num_games", meta.NUM_GAMES)
	v.SetDefault("time_limit", meta.TIME_LIMIT)
	v.SetDefault("timeout", meta.TIMEOUT)
	v.SetDefault("height", meta.BOARD_SIZE)
	v.SetDefault("width", meta.BOARD_SIZE)
	v.SetDefault("parallel", meta.PARALLEL)
	v.SetDefault("output_dir", meta.OUTPUT_DIR)
	v.SetDefault("seed", 1)

	v.SetEnvPrefix("isolation")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = DefaultAgents()
	}
	if len(cfg.Matchups) == 0 {
		cfg.Matchups = DefaultMatchups(cfg.Agents)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the tournament can be played as configured.
func (c *Config) Validate() error {
	if c.NumGames < 1 {
		return fmt.Errorf("%w: num_games must be positive, got %d", ErrInvalidConfig, c.NumGames)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time_limit must be positive, got %v", ErrInvalidConfig, c.TimeLimit)
	}
	if c.Timeout < 0 || c.Timeout >= c.TimeLimit {
		return fmt.Errorf("%w: timeout must be in [0, time_limit), got %v", ErrInvalidConfig, c.Timeout)
	}
	if c.Height < 1 || c.Width < 1 || c.Height*c.Width < 2 {
		return fmt.Errorf("%w: board %dx%d is too small", ErrInvalidConfig, c.Height, c.Width)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("%w: parallel must be positive, got %d", ErrInvalidConfig, c.Parallel)
	}

	ids := map[int]bool{}
	for _, a := range c.Agents {
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate agent id %d", ErrInvalidConfig, a.ID)
		}
		ids[a.ID] = true

		switch a.Kind {
		case KindSearch:
			if a.Depth < 0 {
				return fmt.Errorf("%w: agent %d has negative depth", ErrInvalidConfig, a.ID)
			}
			if _, err := game.ParseEvaluator(a.Evaluator); err != nil {
				return fmt.Errorf("%w: agent %d: %w", ErrInvalidConfig, a.ID, err)
			}
			if a.Algorithm != "" {
				if _, err := searcher.ParseAlgorithm(a.Algorithm); err != nil {
					return fmt.Errorf("%w: agent %d: %w", ErrInvalidConfig, a.ID, err)
				}
			}
		case KindRandom:
		case KindRemote:
			if a.URL == "" {
				return fmt.Errorf("%w: remote agent %d has no url", ErrInvalidConfig, a.ID)
			}
		default:
			return fmt.Errorf("%w: agent %d has unknown kind %q", ErrInvalidConfig, a.ID, a.Kind)
		}
	}

	for _, m := range c.Matchups {
		if len(m) != 2 {
			return fmt.Errorf("%w: matchup %v must name two agents", ErrInvalidConfig, m)
		}
		for _, id := range m {
			if !ids[id] {
				return fmt.Errorf("%w: matchup %v names unknown agent %d", ErrInvalidConfig, m, id)
			}
		}
	}
	return nil
}

// Agent returns the agent config with the given id.
func (c *Config) Agent(id int) (metrics.AgentConfig, bool) {
	return lo.Find(c.Agents, func(a metrics.AgentConfig) bool {
		return a.ID == id
	})
}
