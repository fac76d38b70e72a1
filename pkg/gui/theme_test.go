package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/weetris/pkg/tetris"
)

func TestThemeHexRoundTrip(t *testing.T) {
	for _, theme := range []Theme{ThemeBasic, Theme256} {
		hex := theme.Hex()
		assert.Equal(t, hex, hex.Theme().Hex(), "theme %s", theme.Name)
	}

	assert.Equal(t, "#0", ThemeBasic.Hex().Border)
	assert.Equal(t, tcell.ColorDefault, ThemeBasic.Hex().Theme().Border)
}

func TestThemeHexNames(t *testing.T) {
	th := ThemeHex{Name: "named", O: "yellow", L: "#d78700", Border: "nonsense"}.Theme()

	assert.Equal(t, tcell.ColorYellow, th.O)
	assert.Equal(t, tcell.Color172.Hex(), th.L.Hex())
	assert.Equal(t, tcell.ColorDefault, th.Border)
}

func TestImportThemes(t *testing.T) {
	custom := []ThemeHex{
		{Name: "mine", O: "#ff0000"},
		{Name: "256", O: "#00ff00"},
	}

	th, err := ImportThemes("mine", custom)
	require.NoError(t, err)
	assert.Equal(t, int32(0xff0000), th.O.Hex())

	th, err = ImportThemes("256", custom)
	require.NoError(t, err)
	assert.Equal(t, int32(0x00ff00), th.O.Hex(), "configured themes override built-in ones")

	th, err = ImportThemes("basic", nil)
	require.NoError(t, err)
	assert.Equal(t, ThemeBasic, th)

	_, err = ImportThemes("missing", custom)
	assert.Error(t, err)
}

func TestDefaultTheme(t *testing.T) {
	assert.Equal(t, ThemeBasic, DefaultTheme(8))
	assert.Equal(t, ThemeBasic, DefaultTheme(16))
	assert.Equal(t, Theme256, DefaultTheme(256))
	assert.Equal(t, tcell.Color172, DefaultTheme(1<<24).L)
}

func TestThemePiece(t *testing.T) {
	for p := 0; p < tetris.NumPieces; p++ {
		assert.NotEqual(t, tcell.ColorDefault, ThemeBasic.Piece(tetris.Cell(p)), "piece %s", tetris.PieceName(p))
	}
	assert.Equal(t, ThemeBasic.L, ThemeBasic.Piece(tetris.Cell(tetris.PieceL)))
	assert.Equal(t, tcell.ColorDefault, ThemeBasic.Piece(tetris.Empty))
}

func TestColorTag(t *testing.T) {
	assert.Equal(t, "-", colorTag(tcell.ColorDefault))

	for _, theme := range []Theme{ThemeBasic, Theme256} {
		for p := 0; p < tetris.NumPieces; p++ {
			c := theme.Piece(tetris.Cell(p))
			assert.Equal(t, c.Hex(), tcell.GetColor(colorTag(c)).Hex(), "theme %s piece %s", theme.Name, tetris.PieceName(p))
		}
	}
}
