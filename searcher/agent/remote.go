package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"

	"github.com/rs/zerolog/log"
)

type snapshotter interface {
	Snapshot() game.Snapshot
}

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent asking an agent server at url for its
// moves. Failures are logged and answered with game.NoMove, which the
// engine treats as an illegal move.
func NewRemoteAgent(url string) Agent {
	return remoteAgent{url: url, client: http.DefaultClient}
}

func (a remoteAgent) FindMove(state game.State, timeLeft searcher.TimeLeft) (game.Move, metrics.SearchMetric) {
	move, err := a.requestMove(state, timeLeft)
	if err != nil {
		log.Error().Err(err).Msgf("remote agent %s failed", a.url)
		return game.NoMove, metrics.SearchMetric{}
	}
	return move, metrics.SearchMetric{Algorithm: "remote"}
}

func (a remoteAgent) requestMove(state game.State, timeLeft searcher.TimeLeft) (game.Move, error) {
	board, ok := state.(snapshotter)
	if !ok {
		return game.NoMove, fmt.Errorf("state %T cannot be sent to a remote agent", state)
	}
	body, err := json.Marshal(board.Snapshot())
	if err != nil {
		return game.NoMove, fmt.Errorf("failed to encode state: %w", err)
	}

	ctx := context.Background()
	if timeLeft != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeLeft())
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/findmove", bytes.NewReader(body))
	if err != nil {
		return game.NoMove, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return game.NoMove, fmt.Errorf("failed to request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.NoMove, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var move game.Move
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return game.NoMove, fmt.Errorf("failed to decode move: %w", err)
	}
	return move, nil
}
