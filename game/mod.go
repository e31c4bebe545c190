package game

import (
	"fmt"
	"math"
)

// Player identifies one of the two competitors.
type Player string

// Move is the (row, column) cell a player moves to.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is returned when there is no legal move available.
var NoMove = Move{Row: -1, Col: -1}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// Utility values of a finished game.
var (
	Win  = math.Inf(1)
	Loss = math.Inf(-1)
)

// State should be immutable - ForecastMove always returns a new copy and
// leaves the receiver untouched, so sibling branches of a search never
// interfere with each other.
type State interface {
	Height() int
	Width() int
	ActivePlayer() Player
	InactivePlayer() Player
	Opponent(Player) Player
	// Location returns the player's cell, or false if the player has not
	// been placed on the board yet.
	Location(Player) (Move, bool)
	// LegalMoves returns the moves available to the player. The order is
	// stable and significant for tie breaking.
	LegalMoves(Player) []Move
	ForecastMove(Move) State
	// Utility is 0 while the game is ongoing, Win or Loss from the given
	// player's perspective once the player to move is stuck.
	Utility(Player) float64
}
