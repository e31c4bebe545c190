package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AgentConfig describes one tournament contestant.
type AgentConfig struct {
	ID        int    `mapstructure:"id" yaml:"id"`
	Name      string `mapstructure:"name" yaml:"name"`
	Kind      string `mapstructure:"kind" yaml:"kind"` // search, random or remote
	URL       string `mapstructure:"url" yaml:"url,omitempty"`
	Depth     int    `mapstructure:"depth" yaml:"depth"`
	Evaluator string `mapstructure:"evaluator" yaml:"evaluator,omitempty"`
	Iterative bool   `mapstructure:"iterative" yaml:"iterative"`
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm,omitempty"`
}

type GameRecord struct {
	ID          int
	Agent1      int // AgentConfig.ID of the first mover
	Agent2      int // AgentConfig.ID
	WinnerAgent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID
	MoveMetric
}

// Setup records how an experiment was run.
type Setup struct {
	Name      string  `yaml:"name"`
	NumGames  int     `yaml:"numGames"` // Per matchup
	TimeLimit string  `yaml:"timeLimit"`
	Timeout   string  `yaml:"timeout"`
	Height    int     `yaml:"height"`
	Width     int     `yaml:"width"`
	Matchups  [][]int `yaml:"matchups"`
	StartTime string  `yaml:"startTime"`
	EndTime   string  `yaml:"endTime"`
	Duration  string  `yaml:"duration"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for the experiment under dir.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(dir, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.yaml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "kind", "depth", "evaluator", "iterative", "algorithm"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Kind,
			strconv.Itoa(config.Depth),
			config.Evaluator,
			strconv.FormatBool(config.Iterative),
			config.Algorithm,
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "winner_agent", "starting_player", "winner", "forfeit", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.WinnerAgent),
			string(record.StartingPlayer),
			string(record.Winner),
			record.Forfeit,
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "agent", "step", "player", "row", "col", "state_hash", "algorithm", "evaluator", "duration", "nodes", "depth", "timed_out", "opening"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			string(record.Player),
			strconv.Itoa(record.Move.Row),
			strconv.Itoa(record.Move.Col),
			strconv.FormatUint(record.StateHash, 16),
			record.Algorithm,
			record.Evaluator,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Depth),
			strconv.FormatBool(record.TimedOut),
			strconv.FormatBool(record.Opening),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
