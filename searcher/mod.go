package searcher

import (
	"errors"
	"fmt"
	"isolation/game"
)

var (
	// ErrTimeExceeded aborts a search once the budget runs out. It unwinds
	// every pending frame and is only recovered by the deepening loop.
	ErrTimeExceeded     = errors.New("search time exceeded")
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)

// Result is the score of a search branch and the move leading to it.
// Move is game.NoMove for leaves and positions without legal moves.
type Result struct {
	Score float64
	Move  game.Move
}

type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
)

func (a Algorithm) String() string {
	switch a {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "minimax":
		return Minimax, nil
	case "alphabeta":
		return AlphaBeta, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
