package engine

import "errors"

// Reasons a player forfeits the game.
var (
	ErrTimeout     = errors.New("move returned after the time limit")
	ErrIllegalMove = errors.New("illegal move")
)
