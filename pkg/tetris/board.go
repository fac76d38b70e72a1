package tetris

import "strings"

const (
	Width  = 10
	Height = 20
)

// Cell is either Empty or the color index of the piece that filled it.
type Cell int

const Empty Cell = -1

func (c Cell) Rune() rune {
	if c == Empty {
		return '.'
	}
	return rune(pieceNames[c][0])
}

type Board struct {
	W, H  int
	cells [][]Cell
}

func NewBoard(w int, h int) *Board {
	b := &Board{W: w, H: h, cells: make([][]Cell, h)}
	for y := range b.cells {
		b.cells[y] = emptyRow(w)
	}
	return b
}

func emptyRow(w int) []Cell {
	row := make([]Cell, w)
	for x := range row {
		row[x] = Empty
	}
	return row
}

func (b *Board) In(x int, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

func (b *Board) At(x int, y int) Cell {
	return b.cells[y][x]
}

func (b *Board) Set(x int, y int, c Cell) {
	b.cells[y][x] = c
}

// CanPlace reports whether every filled cell of f, anchored at (x, y), lies on
// the board over an empty cell.
func (b *Board) CanPlace(x int, y int, f Form) bool {
	for i := 0; i < 16; i++ {
		if !f.Has(i) {
			continue
		}

		cx := x + XOffset(i)
		cy := y + YOffset(i)
		if !b.In(cx, cy) || b.cells[cy][cx] != Empty {
			return false
		}
	}

	return true
}

// Merge writes c into every cell covered by f at (x, y). The placement must
// have been checked with CanPlace.
func (b *Board) Merge(x int, y int, f Form, c Cell) {
	for i := 0; i < 16; i++ {
		if f.Has(i) {
			b.cells[y+YOffset(i)][x+XOffset(i)] = c
		}
	}
}

func (b *Board) Unmerge(x int, y int, f Form) {
	b.Merge(x, y, f, Empty)
}

func (b *Board) RowFull(y int) bool {
	for _, c := range b.cells[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifting the rows above down. The
// scan starts at the bottom and checks a row again after clearing it, since a
// full row may have been shifted into it.
func (b *Board) ClearFullRows() int {
	cleared := 0

	y := b.H - 1
	for y >= 0 {
		if !b.RowFull(y) {
			y--
			continue
		}

		for i := y; i > 0; i-- {
			b.cells[i] = b.cells[i-1]
		}
		b.cells[0] = emptyRow(b.W)

		cleared++
	}

	return cleared
}

func (b *Board) Clear() {
	for y := range b.cells {
		b.cells[y] = emptyRow(b.W)
	}
}

// Rows returns a copy of the grid, top row first.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.H)
	for y := range b.cells {
		rows[y] = make([]Cell, b.W)
		copy(rows[y], b.cells[y])
	}
	return rows
}

func (b *Board) Render() string {
	var s strings.Builder
	for y, row := range b.cells {
		for _, c := range row {
			s.WriteRune(c.Rune())
		}
		if y < b.H-1 {
			s.WriteRune('\n')
		}
	}
	return s.String()
}
