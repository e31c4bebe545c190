package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

const (
	p1 = Player("player1")
	p2 = Player("player2")
)

func TestNewBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard(p1, p2, 7, 7)

	is.Equal(b.ActivePlayer(), p1)
	is.Equal(b.InactivePlayer(), p2)
	is.Equal(b.Opponent(p1), p2)
	is.Equal(b.Opponent(p2), p1)
	is.Equal(b.Opponent("stranger"), Player(""))
	is.Equal(len(b.LegalMoves(p1)), 49) // every cell is open for placement
	is.Equal(b.Utility(p1), 0.0)

	_, placed := b.Location(p1)
	is.True(!placed)
}

func TestQueenMoves(t *testing.T) {
	is := is.New(t)
	b := NewBoard(p1, p2, 3, 3).Apply(Move{1, 1})

	// p2 still places anywhere except the occupied center
	is.Equal(len(b.LegalMoves(p2)), 8)

	b = b.Apply(Move{0, 0})
	moves := b.LegalMoves(p1)
	is.Equal(len(moves), 7)                 // every neighbour but p2's corner
	is.Equal(moves[0], Move{Row: 0, Col: 1}) // rays start at the upper left
	is.True(!b.IsLegal(Move{0, 0}))
	is.True(b.IsLegal(Move{2, 2}))
}

func TestRaysStopAtBlockedCells(t *testing.T) {
	is := is.New(t)
	b := NewBoard(p1, p2, 5, 1).
		Apply(Move{0, 0}).
		Apply(Move{0, 2})

	is.Equal(b.LegalMoves(p1), []Move{{0, 1}})
	is.Equal(b.LegalMoves(p2), []Move{{0, 1}, {0, 3}, {0, 4}})
}

func TestForecastMoveDoesNotMutate(t *testing.T) {
	is := is.New(t)
	b := NewBoard(p1, p2, 5, 5)
	next := b.ForecastMove(Move{2, 2})

	_, placed := b.Location(p1)
	is.True(!placed)
	is.Equal(b.ActivePlayer(), p1)
	is.Equal(b.MoveCount(), 0)

	loc, placed := next.Location(p1)
	is.True(placed)
	is.Equal(loc, Move{2, 2})
	is.Equal(next.ActivePlayer(), p2)
	is.True(b.Hash() != next.(*Board).Hash())
}

func TestUtility(t *testing.T) {
	is := is.New(t)
	// 1x3 strip: p1 at one end, p2 at the other, p1 takes the middle
	b := NewBoard(p1, p2, 3, 1).
		Apply(Move{0, 0}).
		Apply(Move{0, 2}).
		Apply(Move{0, 1})

	is.True(b.IsOver())
	is.Equal(b.ActivePlayer(), p2)
	is.Equal(b.Utility(p2), Loss)
	is.Equal(b.Utility(p1), Win)
	is.Equal(b.Utility("stranger"), 0.0)
}

func TestSnapshotRoundTrip(t *testing.T) {
	is := is.New(t)
	b := NewBoard(p1, p2, 7, 5).
		Apply(Move{3, 3}).
		Apply(Move{0, 0}).
		Apply(Move{1, 1})

	got, err := FromSnapshot(b.Snapshot())
	is.NoErr(err)
	is.Equal(got.Hash(), b.Hash())
	is.Equal(got.MoveCount(), 3)
	is.Equal(got.ActivePlayer(), p2)
	is.Equal(got.LegalMoves(p2), b.LegalMoves(p2))
}

func TestFromSnapshotValidation(t *testing.T) {
	valid := NewBoard(p1, p2, 3, 3).Snapshot()
	outside := Move{5, 5}

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"zero height", func(s *Snapshot) { s.Height = 0 }},
		{"same players", func(s *Snapshot) { s.Players[1] = s.Players[0] }},
		{"unknown active player", func(s *Snapshot) { s.Active = "stranger" }},
		{"blocked cell out of bounds", func(s *Snapshot) { s.Blocked = []Move{outside} }},
		{"location out of bounds", func(s *Snapshot) { s.Locations[0] = &outside }},
		{"shared location", func(s *Snapshot) {
			m := Move{1, 1}
			s.Locations = [2]*Move{&m, &m}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			s := valid
			s.Blocked = append([]Move{}, valid.Blocked...)
			tt.mutate(&s)

			_, err := FromSnapshot(s)
			is.True(errors.Is(err, ErrInvalidSnapshot))
		})
	}
}
