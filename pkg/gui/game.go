package gui

import (
	"time"

	"github.com/qnkhuat/weetris/pkg/tetris"
)

// GameState encapsulates everything needed to draw one frame
type GameState struct {
	Snapshot         tetris.Snapshot // Board, pieces and counters
	Theme            Theme           // Theme
	Elapsed          time.Duration   // Playing time of the current game
	DisplayNextPiece bool            // Show the next piece beside the board
}

// Running reports whether a piece is in play, paused or not
func (gs *GameState) Running() bool {
	return gs.Snapshot.State == tetris.Playing || gs.Snapshot.State == tetris.Paused
}
