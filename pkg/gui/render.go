package gui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/weetris/pkg/tetris"
)

const (
	pausedText = "PAUSED"
	nextLabel  = "    Next: "
	nextIndent = "    "
)

var (
	renderHLine    = string(tcell.RuneHLine)
	renderVLine    = string(tcell.RuneVLine)
	renderULCorner = string(tcell.RuneULCorner)
	renderURCorner = string(tcell.RuneURCorner)
	renderLLCorner = string(tcell.RuneLLCorner)
	renderLRCorner = string(tcell.RuneLRCorner)
)

// colorNames maps palette colors back to the names tview understands in
// color tags. When a color has several names the first one in order wins.
var colorNames = func() map[tcell.Color]string {
	names := make(map[tcell.Color]string)
	for name, c := range tcell.ColorNames {
		if prev, ok := names[c]; !ok || name < prev {
			names[c] = name
		}
	}
	return names
}()

// colorTag returns c in the form used inside tview color tags
func colorTag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "-"
	}
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

// block writes one board cell: two spaces on the color of the piece
func block(buf *bytes.Buffer, c tetris.Cell, t Theme) {
	buf.WriteString("[:")
	buf.WriteString(colorTag(t.Piece(c)))
	buf.WriteString("]  ")
}

func border(buf *bytes.Buffer, t Theme, left, right string, w int) {
	fmt.Fprintf(buf, " [%s]%s%s%s[-]\n", colorTag(t.Border), left, strings.Repeat(renderHLine, w*2), right)
}

// FormatElapsed formats a playing time as MM:SS
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Render draws the board, the next piece and the counters as tview tagged
// text.
func Render(gs *GameState) string {
	var buf bytes.Buffer

	snap := &gs.Snapshot
	t := gs.Theme
	h := len(snap.Board)
	w := 0
	if h > 0 {
		w = len(snap.Board[0])
	}
	bc := colorTag(t.Border)
	showNext := gs.DisplayNextPiece && gs.Running()

	border(&buf, t, renderULCorner, renderURCorner, w)

	for y := 0; y < h; y++ {
		fmt.Fprintf(&buf, " [%s]%s[-]", bc, renderVLine)

		if snap.State == tetris.Paused {
			if y == h/2 {
				before := (w*2 - len(pausedText)) / 2
				after := w*2 - len(pausedText) - before
				fmt.Fprintf(&buf, "[%s]%s%s%s[-]", colorTag(t.Message), strings.Repeat(" ", before), pausedText, strings.Repeat(" ", after))
			} else {
				buf.WriteString(strings.Repeat(" ", w*2))
			}
		} else {
			for x := 0; x < w; x++ {
				block(&buf, snap.Cell(x, y), t)
			}
			buf.WriteString("[:-]")
		}

		fmt.Fprintf(&buf, "[%s]%s[-]", bc, renderVLine)

		if showNext {
			switch {
			case y == 0:
				fmt.Fprintf(&buf, "[%s]%s[-]", colorTag(t.Text), nextLabel)
			case y >= 1 && y <= 4:
				buf.WriteString(nextIndent)
				for x := 0; x < 4; x++ {
					block(&buf, snap.Next[y-1][x], t)
				}
				buf.WriteString("[:-]")
			}
		}

		buf.WriteByte('\n')
	}

	border(&buf, t, renderLLCorner, renderLRCorner, w)

	renderDetails(&buf, gs, w)

	return buf.String()
}

func renderDetails(buf *bytes.Buffer, gs *GameState, w int) {
	snap := &gs.Snapshot
	tc := colorTag(gs.Theme.Text)

	plural := ""
	if snap.Lines > 1 {
		plural = "s"
	}

	fmt.Fprintf(buf, "[%s]", tc)
	fmt.Fprintf(buf, " Level %-3d %6d line%s\n", snap.Level, snap.Lines, plural)
	fmt.Fprintf(buf, " %s\n", strings.Repeat("-", w*2+2))
	fmt.Fprintf(buf, " Highest level: %d\n", snap.BestLevel)
	fmt.Fprintf(buf, " Max lines    : %d\n", snap.BestLines)
	fmt.Fprintf(buf, " Playing time : %s\n", FormatElapsed(gs.Elapsed))
	buf.WriteString("[-]")

	if snap.State == tetris.Ended {
		fmt.Fprintf(buf, "\n [%s]>> End of game, score: %d lines, level %d (alt-N to restart) <<[-]\n",
			colorTag(gs.Theme.Message), snap.Lines, snap.Level)
	}
}
