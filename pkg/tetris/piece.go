package tetris

// Form is a 4x4 bounding box stored as a bitmask. Bit 15 is the top left
// cell, bit 0 the bottom right one.
type Form uint16

const NumPieces = 7

const (
	PieceO = iota
	PieceI
	PieceT
	PieceL
	PieceJ
	PieceS
	PieceZ
)

var pieces = [NumPieces]Form{
	1024 + 512 + 64 + 32,    // O
	2048 + 1024 + 512 + 256, // I
	2048 + 1024 + 512 + 64,  // T
	2048 + 1024 + 512 + 128, // L
	2048 + 1024 + 512 + 32,  // J
	1024 + 512 + 128 + 64,   // S
	2048 + 1024 + 64 + 32,   // Z
}

var pieceNames = [NumPieces]string{"O", "I", "T", "L", "J", "S", "Z"}

// -------------------------          -------------------------
// |32768|16384| 8192| 4096|          |  8  | 128 | 2048|32768|
// -------------------------          -------------------------
// | 2048| 1024| 512 | 256 |  rotate  |  4  |  64 | 1024|16384|
// -------------------------   ===>   -------------------------
// | 128 |  64 |  32 |  16 |          |  2  |  32 | 512 | 8192|
// -------------------------          -------------------------
// |  8  |  4  |  2  |  1  |          |  1  |  16 | 256 | 4096|
// -------------------------          -------------------------
var rotation = [16]Form{
	4096, 256, 16, 1,
	8192, 512, 32, 2,
	16384, 1024, 64, 4,
	32768, 2048, 128, 8,
}

// ShapeFor returns the spawn form of a piece.
func ShapeFor(piece int) Form {
	return pieces[piece]
}

func PieceName(piece int) string {
	if piece < 0 || piece >= NumPieces {
		return "?"
	}
	return pieceNames[piece]
}

// XOffset returns the column of a bit inside the bounding box.
func XOffset(bit int) int { return 3 - bit%4 }

// YOffset returns the row of a bit inside the bounding box.
func YOffset(bit int) int { return 3 - bit/4 }

// Rotate returns the form turned by 90 degrees. Four rotations give back the
// original form.
func Rotate(f Form) Form {
	var r Form
	for i := 0; i < 16; i++ {
		if f.Has(i) {
			r |= rotation[i]
		}
	}
	return r
}

func (f Form) Rotate() Form { return Rotate(f) }

func (f Form) Has(bit int) bool {
	return f&(1<<uint(bit)) != 0
}

// Cells returns the offsets of the filled cells inside the bounding box.
func (f Form) Cells() []Point {
	var c []Point
	for i := 0; i < 16; i++ {
		if f.Has(i) {
			c = append(c, Point{XOffset(i), YOffset(i)})
		}
	}
	return c
}

// Preview returns the 4x4 grid of a piece in its spawn form, as shown next to
// the board.
func Preview(piece int) [4][4]Cell {
	var g [4][4]Cell
	for y := range g {
		for x := range g[y] {
			g[y][x] = Empty
		}
	}
	for _, p := range ShapeFor(piece).Cells() {
		g[p.Y][p.X] = Cell(piece)
	}
	return g
}
