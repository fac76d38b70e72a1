package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRandom returns its values in order, over and over.
type fixedRandom struct {
	values []int
	i      int
}

func (r *fixedRandom) Intn(n int) int {
	v := r.values[r.i%len(r.values)] % n
	r.i++
	return v
}

type recordedBest struct {
	level, lines int
	calls        int
}

func (r *recordedBest) Best() (int, int) { return r.level, r.lines }

func (r *recordedBest) RecordBest(level int, lines int) {
	r.level, r.lines = level, lines
	r.calls++
}

func newTestSession(pieces ...int) (*Session, *recordedBest) {
	best := &recordedBest{level: 1}
	s := NewSession(&fixedRandom{values: pieces}, best)
	s.NewGame()
	return s, best
}

func TestNewGame(t *testing.T) {
	s := NewSession(NewRandomizer(1), nil)
	require.Equal(t, NotStarted, s.State())

	s.NewGame()

	assert.Equal(t, Playing, s.State())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 0, s.Lines())
	assert.Equal(t, Point{3, 0}, s.Position())
	assert.Equal(t, ShapeFor(s.Piece()), s.Form())
	assert.True(t, s.NextPiece() >= 0 && s.NextPiece() < NumPieces)
	assert.Equal(t, Interval(1), s.Interval())
}

func TestSoftDropUntilLanded(t *testing.T) {
	s, _ := newTestSession(PieceO)

	moves := 0
	for s.SoftDrop() {
		moves++
		require.Less(t, moves, Height, "piece never landed")
	}
	assert.Equal(t, 17, moves)

	b := s.Board()
	for _, p := range []Point{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		assert.Equal(t, Cell(PieceO), b.At(p.X, p.Y), "cell %s", p)
	}

	filled := 0
	for _, row := range b.Rows() {
		for _, c := range row {
			if c != Empty {
				filled++
			}
		}
	}
	assert.Equal(t, 4, filled, "landing must not overlap or add cells")

	assert.Equal(t, Playing, s.State())
	assert.Equal(t, s.SpawnPoint(), s.Position())
	assert.Equal(t, ShapeFor(PieceO), s.Form())
}

func TestLandingClearsLine(t *testing.T) {
	s, best := newTestSession(PieceT)
	fillRow(s.Board(), 19, Cell(PieceI), 4)

	require.True(t, s.HardDrop())

	assert.Equal(t, 1, s.Lines())
	assert.Equal(t, 1, best.lines)
	assert.Equal(t, 1, best.calls)

	// The flat part of the T is all that is left, shifted into the bottom row.
	rows := s.Board().Rows()
	for x := 0; x < Width; x++ {
		want := Empty
		if x >= 3 && x <= 5 {
			want = Cell(PieceT)
		}
		assert.Equal(t, want, rows[19][x], "column %d", x)
	}
}

func TestLevelUp(t *testing.T) {
	s, best := newTestSession(PieceT)

	for i := 1; i <= LinesPerLevel; i++ {
		s.Board().Clear()
		fillRow(s.Board(), 19, Cell(PieceI), 4)
		s.piece = PieceT
		s.form = ShapeFor(PieceT)
		s.x, s.y = 3, 0

		require.True(t, s.HardDrop())
		require.Equal(t, i, s.Lines())

		if i < LinesPerLevel {
			require.Equal(t, 1, s.Level(), "level after %d lines", i)
		}
	}

	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 2, best.level)
	assert.Less(t, int64(s.Interval()), int64(Interval(1)))
}

func TestLevelCapped(t *testing.T) {
	s, _ := newTestSession(PieceO)

	s.addLines(1000)
	assert.Equal(t, MaxLevel, s.Level())
	assert.Equal(t, Interval(MaxLevel), s.Interval())
}

func TestIntervalDecreases(t *testing.T) {
	for level := 2; level <= MaxLevel; level++ {
		assert.Less(t, int64(Interval(level)), int64(Interval(level-1)), "level %d", level)
	}
}

func TestGameOver(t *testing.T) {
	s, _ := newTestSession(PieceO)
	for y := 3; y < Height; y++ {
		fillRow(s.Board(), y, Cell(PieceS), 9)
	}

	assert.False(t, s.Tick())
	require.Equal(t, Ended, s.State())

	before := s.Board().Rows()
	assert.Equal(t, Cell(PieceO), before[1][4])
	assert.Equal(t, Cell(PieceO), before[2][5])

	assert.False(t, s.Tick())
	assert.False(t, s.HardDrop())
	assert.False(t, s.MoveLeft())
	assert.False(t, s.Rotate())
	assert.False(t, s.TogglePause())
	assert.Equal(t, before, s.Board().Rows())

	snap := s.Snapshot()
	assert.Empty(t, snap.Active)

	s.NewGame()
	assert.Equal(t, Playing, s.State())
}

func TestMovesAndWalls(t *testing.T) {
	s, _ := newTestSession(PieceO)

	moved := 0
	for s.MoveLeft() {
		moved++
	}
	// O fills columns 1 and 2 of its box, spawned at x=3.
	assert.Equal(t, 4, moved)
	assert.Equal(t, -1, s.Position().X)

	moved = 0
	for s.MoveRight() {
		moved++
	}
	assert.Equal(t, 8, moved)
	assert.Equal(t, 7, s.Position().X)
}

func TestRotateRejectedAtWall(t *testing.T) {
	s, _ := newTestSession(PieceI)

	require.True(t, s.Rotate())
	for s.MoveLeft() {
	}
	// Vertical I in column 1 of its box is now at the left wall; turning back
	// to horizontal needs columns 0..3 and x is -1.
	pos := s.Position()
	form := s.Form()
	assert.False(t, s.Rotate())
	assert.Equal(t, pos, s.Position())
	assert.Equal(t, form, s.Form())
}

func TestPause(t *testing.T) {
	s, _ := newTestSession(PieceO)

	require.True(t, s.TogglePause())
	assert.Equal(t, Paused, s.State())

	pos := s.Position()
	assert.False(t, s.Tick())
	assert.False(t, s.MoveRight())
	assert.False(t, s.HardDrop())
	assert.Equal(t, pos, s.Position())

	require.True(t, s.TogglePause())
	assert.Equal(t, Playing, s.State())
	assert.True(t, s.Tick())
}

func TestBestLoadedFromStore(t *testing.T) {
	s := NewSession(NewRandomizer(1), &recordedBest{level: 4, lines: 37})
	level, lines := s.Best()
	assert.Equal(t, 4, level)
	assert.Equal(t, 37, lines)

	s = NewSession(NewRandomizer(1), &recordedBest{})
	level, _ = s.Best()
	assert.Equal(t, 1, level)
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestSession(PieceL, PieceZ)

	snap := s.Snapshot()
	assert.Equal(t, Playing, snap.State)
	assert.Equal(t, Cell(PieceL), snap.ActiveColor)
	assert.Equal(t, Cell(PieceZ), snap.NextColor)
	assert.Len(t, snap.Active, 4)
	assert.Equal(t, Preview(PieceZ), snap.Next)

	for _, p := range snap.Active {
		assert.Equal(t, Cell(PieceL), snap.Cell(p.X, p.Y))
		assert.Equal(t, Empty, snap.Board[p.Y][p.X], "active piece must not be merged")
	}
}
