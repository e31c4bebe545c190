package engine

import (
	"context"
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
	"isolation/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Engine struct {
	board     *game.Board
	agents    map[game.Player]agent.Agent
	timeLimit time.Duration
}

// LocalEngine sets up a game on board where agents[i] plays the board's
// i-th player, each move limited to timeLimit.
func LocalEngine(board *game.Board, agents []agent.Agent, timeLimit time.Duration) *Engine {
	if len(agents) != 2 {
		panic("isolation needs exactly two agents")
	}
	players := board.Players()
	return &Engine{
		board: board,
		agents: map[game.Player]agent.Agent{
			players[0]: agents[0],
			players[1]: agents[1],
		},
		timeLimit: timeLimit,
	}
}

// Board returns the current position.
func (e *Engine) Board() *game.Board {
	return e.board
}

// Run plays until the player to move is stuck or forfeits. A player forfeits
// by returning after its time ran out or by returning an illegal move.
func (e *Engine) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.board.ActivePlayer(),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Debug().Msgf("player %s is starting", e.board.ActivePlayer())

	var winner game.Player
	for step := 1; ; step++ {
		if err := ctx.Err(); err != nil {
			return "", gameMetric, moveMetrics, err
		}

		player := e.board.ActivePlayer()
		opponent := e.board.InactivePlayer()
		legalMoves := e.board.LegalMoves(player)
		if len(legalMoves) == 0 {
			winner = opponent
			break
		}

		timeLeft := searcher.Countdown(e.timeLimit)
		move, search := e.agents[player].FindMove(e.board, timeLeft)
		remaining := timeLeft()

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			StateHash:    e.board.Hash(),
			SearchMetric: search,
		})

		if remaining < 0 {
			gameMetric.Forfeit = fmt.Errorf("%w: %v over", ErrTimeout, -remaining).Error()
			winner = opponent
			break
		}
		if !lo.Contains(legalMoves, move) {
			gameMetric.Forfeit = fmt.Errorf("%w %v", ErrIllegalMove, move).Error()
			winner = opponent
			break
		}

		e.board = e.board.Apply(move)
	}

	if gameMetric.Forfeit != "" {
		log.Warn().Msgf("player %s forfeits: %s", e.board.ActivePlayer(), gameMetric.Forfeit)
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return winner, gameMetric, moveMetrics, nil
}
