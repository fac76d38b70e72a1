package gui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/weetris/pkg/tetris"
)

var tagPattern = regexp.MustCompile(`\[[a-zA-Z0-9#:\-]*\]`)

// visible returns the lines of a rendered frame without color tags
func visible(s string) []string {
	return strings.Split(tagPattern.ReplaceAllString(s, ""), "\n")
}

func testState(state tetris.State) *GameState {
	b := tetris.NewBoard(tetris.Width, tetris.Height)
	b.Set(0, 19, tetris.Cell(tetris.PieceZ))

	return &GameState{
		Snapshot: tetris.Snapshot{
			State:       state,
			Board:       b.Rows(),
			Active:      []tetris.Point{{X: 4, Y: 1}, {X: 5, Y: 1}, {X: 6, Y: 1}, {X: 5, Y: 2}},
			ActiveColor: tetris.Cell(tetris.PieceT),
			Next:        tetris.Preview(tetris.PieceI),
			NextColor:   tetris.Cell(tetris.PieceI),
			Level:       3,
			Lines:       21,
			BestLevel:   4,
			BestLines:   35,
		},
		Theme:            ThemeBasic,
		Elapsed:          75 * time.Second,
		DisplayNextPiece: true,
	}
}

func TestRenderPlaying(t *testing.T) {
	gs := testState(tetris.Playing)
	out := Render(gs)
	lines := visible(out)

	require.True(t, len(lines) >= 27, "rendered frame too short:\n%s", out)

	empty := strings.Repeat(" ", tetris.Width*2)
	assert.Equal(t, " ┌"+strings.Repeat("─", tetris.Width*2)+"┐", lines[0])
	assert.Equal(t, " │"+empty+"│"+nextLabel, lines[1])
	assert.Equal(t, " │"+empty+"│"+nextIndent+strings.Repeat(" ", 8), lines[2])
	assert.Equal(t, " │"+empty+"│", lines[6])
	assert.Equal(t, " └"+strings.Repeat("─", tetris.Width*2)+"┘", lines[21])

	assert.Equal(t, " Level 3"+strings.Repeat(" ", 7)+"21 lines", lines[22])
	assert.Equal(t, " "+strings.Repeat("-", tetris.Width*2+2), lines[23])
	assert.Equal(t, " Highest level: 4", lines[24])
	assert.Equal(t, " Max lines    : 35", lines[25])
	assert.Equal(t, " Playing time : 01:15", lines[26])

	assert.NotContains(t, out, "End of game")
	assert.NotContains(t, out, pausedText)
}

func TestRenderColors(t *testing.T) {
	gs := testState(tetris.Playing)
	raw := strings.Split(Render(gs), "\n")

	z := "[:" + colorTag(ThemeBasic.Z) + "]  "
	assert.True(t, strings.HasPrefix(strings.SplitN(raw[20], renderVLine, 2)[1], "[-]"+z), "bottom row should start with a Z block: %q", raw[20])

	// The active T covers columns 4 to 6 of the second row.
	tc := "[:" + colorTag(ThemeBasic.T) + "]  "
	assert.Equal(t, 3, strings.Count(raw[2], tc))
	// The next piece is an I, drawn in the preview.
	ic := "[:" + colorTag(ThemeBasic.I) + "]  "
	assert.Equal(t, 4, strings.Count(raw[3], ic))
}

func TestRenderWithoutPreview(t *testing.T) {
	gs := testState(tetris.Playing)
	gs.DisplayNextPiece = false

	assert.NotContains(t, Render(gs), "Next:")
}

func TestRenderPaused(t *testing.T) {
	gs := testState(tetris.Paused)
	out := Render(gs)
	lines := visible(out)

	mid := 1 + tetris.Height/2
	assert.Equal(t, " │"+strings.Repeat(" ", 7)+pausedText+strings.Repeat(" ", 7)+"│", lines[mid])
	assert.Equal(t, 1, strings.Count(out, pausedText))
	assert.NotContains(t, out, "[:"+colorTag(ThemeBasic.Z)+"]", "board is hidden while paused")
	assert.Contains(t, out, "Next:")
}

func TestRenderEnded(t *testing.T) {
	gs := testState(tetris.Ended)
	gs.Snapshot.Active = nil
	out := Render(gs)

	assert.Contains(t, tagPattern.ReplaceAllString(out, ""), " >> End of game, score: 21 lines, level 3 (alt-N to restart) <<")
	assert.NotContains(t, out, "Next:")
}

func TestRenderSingleLine(t *testing.T) {
	gs := testState(tetris.Playing)
	gs.Snapshot.Lines = 1
	lines := visible(Render(gs))

	assert.Equal(t, " Level 3"+strings.Repeat(" ", 8)+"1 line", lines[22])
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", FormatElapsed(0))
	assert.Equal(t, "00:00", FormatElapsed(-time.Second))
	assert.Equal(t, "00:59", FormatElapsed(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "12:03", FormatElapsed(12*time.Minute+3*time.Second))
	assert.Equal(t, "100:00", FormatElapsed(100*time.Minute))
}

func BenchmarkRender(b *testing.B) {
	gs := testState(tetris.Playing)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Render(gs)
	}
}
