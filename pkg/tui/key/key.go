// ABOUTME: Defines the Key type and ParseKey for terminal keyboard, mouse, and focus input.
// ABOUTME: Handles printable runes, control characters, and delegates escape sequences to the mouse and CSI parsers.

package key

import (
	"strings"
	"unicode/utf8"
)

// Key represents a parsed input event: a key press, a mouse report, or a
// focus change.
type Key struct {
	Type  KeyType
	Rune  rune // For printable characters
	Alt   bool
	Ctrl  bool
	Shift bool
	Mouse Mouse // Set when Type is KeyMouse
}

// KeyType enumerates the kinds of key events the TUI can receive.
type KeyType int

const (
	KeyRune     KeyType = iota // Printable character
	KeyEnter                   // Enter / Return
	KeyTab                     // Tab
	KeyBackTab                 // Shift+Tab
	KeyBackspace               // Backspace / DEL (0x7F)
	KeyDelete                  // Delete key
	KeyUp                      // Arrow up
	KeyDown                    // Arrow down
	KeyLeft                    // Arrow left
	KeyRight                   // Arrow right
	KeyHome                    // Home
	KeyEnd                     // End
	KeyPageUp                  // Page Up
	KeyPageDown                // Page Down
	KeyEscape                  // Escape
	KeyCtrlC                   // Ctrl+C
	KeyCtrlD                   // Ctrl+D
	KeyCtrlG                   // Ctrl+G
	KeyCtrlL                   // Ctrl+L
	KeyCtrlO                   // Ctrl+O
	KeyCtrlR                   // Ctrl+R
	KeyCtrlN                   // Ctrl+N
	KeyCtrlP                   // Ctrl+P
	KeyMouse                   // SGR mouse report
	KeyFocusIn                 // Terminal gained focus
	KeyFocusOut                // Terminal lost focus
	KeyUnknown                 // Unrecognized input
)

// singleBytes are the one-byte keys other than printable ASCII.
var singleBytes = map[byte]Key{
	0x03: {Type: KeyCtrlC, Ctrl: true},
	0x04: {Type: KeyCtrlD, Ctrl: true},
	0x07: {Type: KeyCtrlG, Ctrl: true},
	0x08: {Type: KeyBackspace},
	0x09: {Type: KeyTab},
	0x0c: {Type: KeyCtrlL, Ctrl: true},
	0x0d: {Type: KeyEnter},
	0x0e: {Type: KeyCtrlN, Ctrl: true},
	0x0f: {Type: KeyCtrlO, Ctrl: true},
	0x10: {Type: KeyCtrlP, Ctrl: true},
	0x12: {Type: KeyCtrlR, Ctrl: true},
	0x1b: {Type: KeyEscape},
	0x7f: {Type: KeyBackspace},
}

// ParseKey decodes one key from raw input. data should hold exactly one
// key; bytes after the first rune of non-escape input are ignored.
func ParseKey(data string) Key {
	if data == "" {
		return Key{Type: KeyUnknown}
	}
	if data[0] == 0x1b && len(data) > 1 {
		return parseEscapeSequence(data)
	}

	r, _ := utf8.DecodeRuneInString(data)
	switch {
	case r < utf8.RuneSelf:
		if k, ok := singleBytes[byte(r)]; ok {
			return k
		}
		if r >= 0x20 && r < 0x7f {
			return Key{Type: KeyRune, Rune: r}
		}
		return Key{Type: KeyUnknown}
	case r == utf8.RuneError:
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseEscapeSequence decodes ESC-prefixed data: mouse and focus reports,
// CSI/SS3 keys, or Alt plus a printable rune.
func parseEscapeSequence(data string) Key {
	if m, ok := ParseMouse(data); ok {
		return Key{Type: KeyMouse, Mouse: m, Shift: m.Shift, Alt: m.Alt, Ctrl: m.Ctrl}
	}
	switch data {
	case focusIn:
		return Key{Type: KeyFocusIn}
	case focusOut:
		return Key{Type: KeyFocusOut}
	}
	if k, ok := parseCSIKey(data); ok {
		return k
	}

	r, size := utf8.DecodeRuneInString(data[1:])
	if size == len(data)-1 && r != utf8.RuneError && r >= 0x20 && r != 0x7f {
		return Key{Type: KeyRune, Rune: r, Alt: true}
	}
	return Key{Type: KeyUnknown}
}

var typeNames = [...]string{
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlD:     "Ctrl+D",
	KeyCtrlG:     "Ctrl+G",
	KeyCtrlL:     "Ctrl+L",
	KeyCtrlO:     "Ctrl+O",
	KeyCtrlR:     "Ctrl+R",
	KeyCtrlN:     "Ctrl+N",
	KeyCtrlP:     "Ctrl+P",
	KeyMouse:     "Mouse",
	KeyFocusIn:   "FocusIn",
	KeyFocusOut:  "FocusOut",
	KeyUnknown:   "Unknown",
}

func (t KeyType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	name := k.Type.String()
	if k.Type == KeyRune {
		name = string(k.Rune)
	}
	if k.Type == KeyBackTab || strings.HasPrefix(name, "Ctrl+") {
		return name
	}

	var mods strings.Builder
	if k.Ctrl {
		mods.WriteString("Ctrl+")
	}
	if k.Alt {
		mods.WriteString("Alt+")
	}
	if k.Shift && k.Type != KeyRune {
		mods.WriteString("Shift+")
	}
	return mods.String() + name
}
