package tetris

import (
	"math/rand"
	"time"
)

// Randomizer picks the next piece. Every draw is independent and uniform;
// the same piece may come up any number of times in a row.
type Randomizer interface {
	Intn(n int) int
}

func NewRandomizer(seed int64) Randomizer {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func randomPiece(r Randomizer) int {
	return r.Intn(NumPieces)
}
