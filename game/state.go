package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

const unplaced = -1

// Queen directions, in the order rays are generated.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var ErrInvalidSnapshot = errors.New("invalid board snapshot")

// Board is the reference Isolation board: two players moving like chess
// queens, every visited cell blocked for the rest of the game.
type Board struct {
	height    int
	width     int
	players   [2]Player
	locations [2]int // Cell index per player, unplaced if not on the board yet
	blocked   []bool // Cells visited by either player, indexed by row*width+col
	active    int    // Index of the player to move
	moveCount int
}

// NewBoard returns an empty board where player1 moves first.
func NewBoard(player1, player2 Player, width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic("board dimensions must be positive")
	}
	if player1 == player2 {
		panic("players must be distinct")
	}
	return &Board{
		height:    height,
		width:     width,
		players:   [2]Player{player1, player2},
		locations: [2]int{unplaced, unplaced},
		blocked:   make([]bool, height*width),
	}
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// Players returns both players in turn order.
func (b *Board) Players() [2]Player { return b.players }

func (b *Board) MoveCount() int { return b.moveCount }

func (b *Board) ActivePlayer() Player   { return b.players[b.active] }
func (b *Board) InactivePlayer() Player { return b.players[1-b.active] }

func (b *Board) Opponent(p Player) Player {
	switch p {
	case b.players[0]:
		return b.players[1]
	case b.players[1]:
		return b.players[0]
	}
	return ""
}

func (b *Board) Location(p Player) (Move, bool) {
	i := b.index(p)
	if i < 0 || b.locations[i] == unplaced {
		return NoMove, false
	}
	return b.cell(b.locations[i]), true
}

// LegalMoves lists every empty cell for an unplaced player, otherwise every
// cell reachable along the queen rays from the player's location.
func (b *Board) LegalMoves(p Player) []Move {
	i := b.index(p)
	if i < 0 {
		return nil
	}

	if b.locations[i] == unplaced {
		moves := make([]Move, 0, len(b.blocked)-b.moveCount)
		for idx, blocked := range b.blocked {
			if !blocked {
				moves = append(moves, b.cell(idx))
			}
		}
		return moves
	}

	from := b.cell(b.locations[i])
	moves := []Move{}
	for _, d := range directions {
		r, c := from.Row+d[0], from.Col+d[1]
		for b.inBounds(r, c) && !b.blocked[r*b.width+c] {
			moves = append(moves, Move{Row: r, Col: c})
			r, c = r+d[0], c+d[1]
		}
	}
	return moves
}

// IsLegal reports whether the active player may move to m.
func (b *Board) IsLegal(m Move) bool {
	return lo.Contains(b.LegalMoves(b.ActivePlayer()), m)
}

// ForecastMove returns a copy of the board with the active player moved to m
// and the turn passed to the opponent. Legality is not checked.
func (b *Board) ForecastMove(m Move) State {
	return b.Apply(m)
}

// Apply is ForecastMove returning the concrete board type.
func (b *Board) Apply(m Move) *Board {
	next := b.Copy()
	idx := m.Row*b.width + m.Col
	next.blocked[idx] = true
	next.locations[next.active] = idx
	next.active = 1 - next.active
	next.moveCount++
	return next
}

func (b *Board) Utility(p Player) float64 {
	if b.index(p) < 0 {
		return 0
	}
	if len(b.LegalMoves(b.ActivePlayer())) > 0 {
		return 0
	}
	if p == b.ActivePlayer() {
		return Loss
	}
	return Win
}

// IsOver reports whether the player to move is stuck.
func (b *Board) IsOver() bool {
	return len(b.LegalMoves(b.ActivePlayer())) == 0
}

func (b *Board) Copy() *Board {
	blocked := make([]bool, len(b.blocked))
	copy(blocked, b.blocked)

	return &Board{
		height:    b.height,
		width:     b.width,
		players:   b.players,
		locations: b.locations,
		blocked:   blocked,
		active:    b.active,
		moveCount: b.moveCount,
	}
}

// Hash identifies the position: dimensions, blocked cells, locations and
// the side to move.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 0, 8*5+len(b.blocked))
	for _, v := range []int{b.height, b.width, b.locations[0], b.locations[1], b.active} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	for _, blocked := range b.blocked {
		if blocked {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return xxhash.Sum64(buf)
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			idx := r*b.width + c
			switch {
			case idx == b.locations[0]:
				sb.WriteString(" 1")
			case idx == b.locations[1]:
				sb.WriteString(" 2")
			case b.blocked[idx]:
				sb.WriteString(" -")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) index(p Player) int {
	return lo.IndexOf(b.players[:], p)
}

func (b *Board) cell(idx int) Move {
	return Move{Row: idx / b.width, Col: idx % b.width}
}

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.height && c >= 0 && c < b.width
}

// Snapshot is the wire form of a board.
type Snapshot struct {
	Height    int       `json:"height"`
	Width     int       `json:"width"`
	Players   [2]Player `json:"players"`
	Locations [2]*Move  `json:"locations"` // nil while unplaced
	Blocked   []Move    `json:"blocked"`
	Active    Player    `json:"active"`
}

func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Height:  b.height,
		Width:   b.width,
		Players: b.players,
		Blocked: []Move{},
		Active:  b.ActivePlayer(),
	}
	for i, loc := range b.locations {
		if loc != unplaced {
			m := b.cell(loc)
			s.Locations[i] = &m
		}
	}
	for idx, blocked := range b.blocked {
		if blocked {
			s.Blocked = append(s.Blocked, b.cell(idx))
		}
	}
	return s
}

// FromSnapshot rebuilds a board, validating every cell and player.
func FromSnapshot(s Snapshot) (*Board, error) {
	if s.Height <= 0 || s.Width <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidSnapshot, s.Height, s.Width)
	}
	if s.Players[0] == "" || s.Players[1] == "" || s.Players[0] == s.Players[1] {
		return nil, fmt.Errorf("%w: players %q and %q", ErrInvalidSnapshot, s.Players[0], s.Players[1])
	}

	b := NewBoard(s.Players[0], s.Players[1], s.Width, s.Height)
	switch s.Active {
	case s.Players[0]:
		b.active = 0
	case s.Players[1]:
		b.active = 1
	default:
		return nil, fmt.Errorf("%w: unknown active player %q", ErrInvalidSnapshot, s.Active)
	}

	block := func(m Move) error {
		if !b.inBounds(m.Row, m.Col) {
			return fmt.Errorf("%w: cell %v out of bounds", ErrInvalidSnapshot, m)
		}
		idx := m.Row*b.width + m.Col
		if !b.blocked[idx] {
			b.blocked[idx] = true
			b.moveCount++
		}
		return nil
	}

	for _, m := range s.Blocked {
		if err := block(m); err != nil {
			return nil, err
		}
	}
	for i, loc := range s.Locations {
		if loc == nil {
			continue
		}
		if err := block(*loc); err != nil {
			return nil, err
		}
		b.locations[i] = loc.Row*b.width + loc.Col
	}
	if b.locations[0] != unplaced && b.locations[0] == b.locations[1] {
		return nil, fmt.Errorf("%w: players share cell %v", ErrInvalidSnapshot, *s.Locations[0])
	}
	return b, nil
}
