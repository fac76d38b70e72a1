package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/weetris/pkg/event"
)

// Keybinding maps a key to a command word understood by event.ParseCommand.
// Zero fields match anything, so more specific bindings come first. Bindings
// marked bare only match without modifiers.
type Keybinding struct {
	k    tcell.Key
	r    rune
	m    tcell.ModMask
	bare bool

	command string
}

var keybindings = []*Keybinding{
	{k: tcell.KeyUp, command: "up"},
	{k: tcell.KeyDown, m: tcell.ModCtrl, command: "bottom"},
	{k: tcell.KeyDown, command: "down"},
	{k: tcell.KeyLeft, command: "left"},
	{k: tcell.KeyRight, command: "right"},
	{r: 'n', m: tcell.ModAlt, command: "new_game"},
	{r: 'N', m: tcell.ModAlt, command: "new_game"},
	{r: 'p', m: tcell.ModAlt, command: "pause"},
	{r: 'P', m: tcell.ModAlt, command: "pause"},
	{r: 'q', bare: true, command: "q"},
}

func (b *Keybinding) matches(ev *tcell.EventKey) bool {
	if b.k != 0 && b.k != ev.Key() {
		return false
	}
	if b.r != 0 && (ev.Key() != tcell.KeyRune || b.r != ev.Rune()) {
		return false
	}
	if b.m != 0 && b.m != ev.Modifiers() {
		return false
	}
	if b.bare && ev.Modifiers() != tcell.ModNone {
		return false
	}
	return true
}

// KeyAction returns the action bound to a key press. keyDownSlow selects
// which of down and ctrl-down only lowers the piece one row.
func KeyAction(ev *tcell.EventKey, keyDownSlow bool) (event.Action, bool) {
	for _, bind := range keybindings {
		if bind.matches(ev) {
			return event.ParseCommand(bind.command, keyDownSlow)
		}
	}
	return "", false
}
