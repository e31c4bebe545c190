package searcher

import (
	"isolation/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func placedBoard() *game.Board {
	return game.NewBoard(p1, p2, 7, 7).
		Apply(game.Move{Row: 3, Col: 3}).
		Apply(game.Move{Row: 0, Col: 0})
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := New()

		require.NoError(t, err)
		require.Equal(t, DefaultDepth, s.Depth())
		require.Equal(t, game.CenterPlusSafe{}, s.Evaluator())
		require.True(t, s.Iterative())
		require.Equal(t, Minimax, s.Algorithm())
		require.Equal(t, DefaultTimeout, s.Timeout())
	})

	t.Run("options", func(t *testing.T) {
		s, err := New(
			WithDepth(-1),
			WithEvaluatorName(game.EvalAggressive),
			WithIterative(false),
			WithAlgorithm("alphabeta"),
			WithTimeout(time.Millisecond),
		)

		require.NoError(t, err)
		require.Equal(t, -1, s.Depth())
		require.Equal(t, game.AggressiveDiff, s.Evaluator())
		require.False(t, s.Iterative())
		require.Equal(t, AlphaBeta, s.Algorithm())
		require.Equal(t, time.Millisecond, s.Timeout())
	})

	t.Run("rejects unknown algorithms", func(t *testing.T) {
		_, err := New(WithAlgorithm("negascout"))
		require.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("rejects unknown evaluators", func(t *testing.T) {
		_, err := New(WithEvaluatorName("vibes"))
		require.ErrorIs(t, err, game.ErrUnknownEvaluator)

		_, err = New(WithEvaluator(nil))
		require.ErrorIs(t, err, game.ErrUnknownEvaluator)
	})

	t.Run("rejects negative timeouts", func(t *testing.T) {
		_, err := New(WithTimeout(-time.Second))
		require.Error(t, err)
	})
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range []Algorithm{Minimax, AlphaBeta} {
		got, err := ParseAlgorithm(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
}

func TestGetMoveWithoutLegalMoves(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	require.Equal(t, game.NoMove, s.GetMove(placedBoard(), nil, nil))
}

func TestOpeningBook(t *testing.T) {
	s, err := New(WithMetrics())
	require.NoError(t, err)

	t.Run("takes the center of an empty board", func(t *testing.T) {
		board := game.NewBoard(p1, p2, 7, 7)

		move, metric := s.FindMove(board, board.LegalMoves(p1), Countdown(time.Second))

		require.Equal(t, game.Move{Row: 3, Col: 3}, move)
		require.True(t, metric.Opening)
		require.Zero(t, metric.Nodes, "Opening moves should not search")
	})

	t.Run("takes the cell above a taken center", func(t *testing.T) {
		board := game.NewBoard(p1, p2, 7, 7).Apply(game.Move{Row: 3, Col: 3})

		move := s.GetMove(board, board.LegalMoves(p2), Countdown(time.Second))

		require.Equal(t, game.Move{Row: 2, Col: 3}, move)
	})

	t.Run("uses integer center on even boards", func(t *testing.T) {
		board := game.NewBoard(p1, p2, 6, 4)

		move := s.GetMove(board, board.LegalMoves(p1), nil)

		require.Equal(t, game.Move{Row: 2, Col: 3}, move)
	})

	t.Run("searches once placed", func(t *testing.T) {
		board := placedBoard()

		_, metric := s.FindMove(board, board.LegalMoves(p1), nil)

		require.False(t, metric.Opening)
		require.Positive(t, metric.Nodes)
	})
}

func TestDeepening(t *testing.T) {
	t.Run("fixed depth completes every depth", func(t *testing.T) {
		board := placedBoard()
		s, err := New(WithDepth(2), WithAlgorithm("alphabeta"), WithMetrics())
		require.NoError(t, err)

		move, metric := s.FindMove(board, board.LegalMoves(p1), nil)

		want, err := s.Search(board, 2, Unlimited())
		require.NoError(t, err)
		require.Equal(t, want.Move, move, "Move should come from the deepest search")
		require.Equal(t, 2, metric.Depth)
		require.False(t, metric.TimedOut)
		require.Equal(t, "alphabeta", metric.Algorithm)
		require.Equal(t, game.EvalCenterPlusSafe, metric.Evaluator)
	})

	t.Run("timeout keeps the last completed depth", func(t *testing.T) {
		board := placedBoard()
		s, err := New(WithDepth(5), WithMetrics())
		require.NoError(t, err)

		// Depth one visits 24 nodes, depth two several hundred.
		move, metric := s.FindMove(board, board.LegalMoves(p1), afterCalls(100))

		want, err := s.Search(board, 1, Unlimited())
		require.NoError(t, err)
		require.True(t, metric.TimedOut)
		require.Equal(t, 1, metric.Depth)
		require.Equal(t, want.Move, move)
	})

	t.Run("expired budget returns no move", func(t *testing.T) {
		board := placedBoard()
		s, err := New(WithDepth(0), WithMetrics())
		require.NoError(t, err)

		move, metric := s.FindMove(board, board.LegalMoves(p1), func() time.Duration { return 0 })

		require.Equal(t, game.NoMove, move)
		require.True(t, metric.TimedOut)
		require.Zero(t, metric.Depth)
	})

	t.Run("unbounded depth stops once the game tree is exhausted", func(t *testing.T) {
		// 3x3 board, only a handful of plies left
		board := game.NewBoard(p1, p2, 3, 3).
			Apply(game.Move{Row: 0, Col: 0}).
			Apply(game.Move{Row: 2, Col: 2}).
			Apply(game.Move{Row: 1, Col: 1}).
			Apply(game.Move{Row: 2, Col: 1})
		s, err := New(WithDepth(0), WithAlgorithm("alphabeta"), WithMetrics())
		require.NoError(t, err)

		move, metric := s.FindMove(board, board.LegalMoves(p1), nil)

		require.Contains(t, board.LegalMoves(p1), move)
		require.False(t, metric.TimedOut)
		require.LessOrEqual(t, metric.Depth, 5, "No game can last longer than the empty cells")
	})

	t.Run("unbounded depth with a real clock", func(t *testing.T) {
		board := placedBoard()
		s, err := New(WithDepth(0), WithAlgorithm("alphabeta"), WithTimeout(20*time.Millisecond))
		require.NoError(t, err)
		timeLeft := Countdown(100 * time.Millisecond)

		move := s.GetMove(board, board.LegalMoves(p1), timeLeft)

		require.Contains(t, board.LegalMoves(p1), move)
		require.GreaterOrEqual(t, timeLeft(), time.Duration(0), "Move should be returned before time runs out")
	})
}
