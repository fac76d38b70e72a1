package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/weetris/pkg/tetris"
)

// Theme is used for dynamically coloring the board and its panels
type Theme struct {
	Name    string      `json:"name"`
	O       tcell.Color `json:"o"`
	I       tcell.Color `json:"i"`
	T       tcell.Color `json:"t"`
	L       tcell.Color `json:"l"`
	J       tcell.Color `json:"j"`
	S       tcell.Color `json:"s"`
	Z       tcell.Color `json:"z"`
	Border  tcell.Color `json:"border"`
	Text    tcell.Color `json:"text"`
	Message tcell.Color `json:"message"`
}

// ThemeHex is the form of a Theme found in configuration files
type ThemeHex struct {
	Name    string `json:"name" yaml:"name"`
	O       string `json:"o" yaml:"o"`
	I       string `json:"i" yaml:"i"`
	T       string `json:"t" yaml:"t"`
	L       string `json:"l" yaml:"l"`
	J       string `json:"j" yaml:"j"`
	S       string `json:"s" yaml:"s"`
	Z       string `json:"z" yaml:"z"`
	Border  string `json:"border" yaml:"border"`
	Text    string `json:"text" yaml:"text"`
	Message string `json:"message" yaml:"message"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.O.Hex()),
		fmtHex(t.I.Hex()),
		fmtHex(t.T.Hex()),
		fmtHex(t.L.Hex()),
		fmtHex(t.J.Hex()),
		fmtHex(t.S.Hex()),
		fmtHex(t.Z.Hex()),
		fmtHex(t.Border.Hex()),
		fmtHex(t.Text.Hex()),
		fmtHex(t.Message.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme. Color names such as "yellow" are
// accepted as well as hex values.
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.O),
		tcell.GetColor(t.I),
		tcell.GetColor(t.T),
		tcell.GetColor(t.L),
		tcell.GetColor(t.J),
		tcell.GetColor(t.S),
		tcell.GetColor(t.Z),
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Text),
		tcell.GetColor(t.Message),
	}
}

// Piece returns the color of a board cell. Empty cells use the terminal
// background.
func (t Theme) Piece(c tetris.Cell) tcell.Color {
	switch c {
	case tetris.PieceO:
		return t.O
	case tetris.PieceI:
		return t.I
	case tetris.PieceT:
		return t.T
	case tetris.PieceL:
		return t.L
	case tetris.PieceJ:
		return t.J
	case tetris.PieceS:
		return t.S
	case tetris.PieceZ:
		return t.Z
	default:
		return tcell.ColorDefault
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument. Built-in themes are
// used when no entry matches.
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	// First check if want is in the provided config (override)
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	for _, t := range []Theme{ThemeBasic, Theme256} {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// DefaultTheme picks the palette matching the number of colors of the
// terminal
func DefaultTheme(colors int) Theme {
	if colors >= 256 {
		return Theme256
	}
	return ThemeBasic
}

// ThemeBasic is the default theme, limited to the 8 basic colors
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.ColorYellow,  // O
	tcell.ColorAqua,    // I
	tcell.ColorPurple,  // T
	tcell.ColorOlive,   // L
	tcell.ColorNavy,    // J
	tcell.ColorGreen,   // S
	tcell.ColorMaroon,  // Z
	tcell.ColorDefault, // Border
	tcell.ColorDefault, // Text
	tcell.ColorDefault, // Message
}

// Theme256 uses an orange L piece
var Theme256 = Theme{
	"256",              // Name
	tcell.ColorYellow,  // O
	tcell.ColorAqua,    // I
	tcell.ColorPurple,  // T
	tcell.Color172,     // L
	tcell.ColorNavy,    // J
	tcell.ColorGreen,   // S
	tcell.ColorMaroon,  // Z
	tcell.ColorDefault, // Border
	tcell.Color250,     // Text
	tcell.Color214,     // Message
}
