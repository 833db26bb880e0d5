// ABOUTME: Translates Bubble Tea key, mouse and focus messages into engine key events
// ABOUTME: Pasted rune runs expand into one event per rune

package btea

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

var keyTypes = map[tea.KeyType]key.Key{
	tea.KeyEnter:     {Type: key.KeyEnter},
	tea.KeyTab:       {Type: key.KeyTab},
	tea.KeyShiftTab:  {Type: key.KeyBackTab},
	tea.KeyBackspace: {Type: key.KeyBackspace},
	tea.KeyDelete:    {Type: key.KeyDelete},
	tea.KeyUp:        {Type: key.KeyUp},
	tea.KeyDown:      {Type: key.KeyDown},
	tea.KeyLeft:      {Type: key.KeyLeft},
	tea.KeyRight:     {Type: key.KeyRight},
	tea.KeyHome:      {Type: key.KeyHome},
	tea.KeyEnd:       {Type: key.KeyEnd},
	tea.KeyPgUp:      {Type: key.KeyPageUp},
	tea.KeyPgDown:    {Type: key.KeyPageDown},
	tea.KeyEsc:       {Type: key.KeyEscape},
	tea.KeyCtrlC:     {Type: key.KeyCtrlC, Ctrl: true},
	tea.KeyCtrlD:     {Type: key.KeyCtrlD, Ctrl: true},
	tea.KeyCtrlG:     {Type: key.KeyCtrlG, Ctrl: true},
	tea.KeyCtrlL:     {Type: key.KeyCtrlL, Ctrl: true},
	tea.KeyCtrlN:     {Type: key.KeyCtrlN, Ctrl: true},
	tea.KeyCtrlO:     {Type: key.KeyCtrlO, Ctrl: true},
	tea.KeyCtrlP:     {Type: key.KeyCtrlP, Ctrl: true},
	tea.KeyCtrlR:     {Type: key.KeyCtrlR, Ctrl: true},
}

// translateKey maps a key message to zero or more engine keys.
func translateKey(msg tea.KeyMsg) []key.Key {
	switch msg.Type {
	case tea.KeyRunes:
		out := make([]key.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, key.Key{Type: key.KeyRune, Rune: r, Alt: msg.Alt})
		}
		return out
	case tea.KeySpace:
		return []key.Key{{Type: key.KeyRune, Rune: ' ', Alt: msg.Alt}}
	}
	k, ok := keyTypes[msg.Type]
	if !ok {
		return nil
	}
	k.Alt = msg.Alt
	return []key.Key{k}
}

var mouseButtons = map[tea.MouseButton]key.MouseButton{
	tea.MouseButtonNone:      key.MouseNone,
	tea.MouseButtonLeft:      key.MouseLeft,
	tea.MouseButtonMiddle:    key.MouseMiddle,
	tea.MouseButtonRight:     key.MouseRight,
	tea.MouseButtonWheelUp:   key.MouseWheelUp,
	tea.MouseButtonWheelDown: key.MouseWheelDown,
}

// translateMouse maps a mouse message to an engine mouse event.
// Horizontal wheel and extra buttons are dropped.
func translateMouse(msg tea.MouseMsg) (key.Key, bool) {
	b, ok := mouseButtons[msg.Button]
	if !ok {
		return key.Key{}, false
	}
	m := key.Mouse{
		Button:  b,
		X:       msg.X,
		Y:       msg.Y,
		Release: msg.Action == tea.MouseActionRelease,
		Motion:  msg.Action == tea.MouseActionMotion,
		Shift:   msg.Shift,
		Alt:     msg.Alt,
		Ctrl:    msg.Ctrl,
	}
	return key.Key{Type: key.KeyMouse, Mouse: m, Shift: m.Shift, Alt: m.Alt, Ctrl: m.Ctrl}, true
}

var (
	keyFocusIn  = key.Key{Type: key.KeyFocusIn}
	keyFocusOut = key.Key{Type: key.KeyFocusOut}
)
