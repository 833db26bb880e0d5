// ABOUTME: SGR (1006) mouse report and focus-event (1004) parsing
// ABOUTME: Also holds the DEC private mode sequences that enable both reports

package key

import (
	"strconv"
	"strings"
)

// Mode sequences written to the terminal to turn reporting on and off.
const (
	EnableMouse   = "\x1b[?1000h\x1b[?1006h"
	DisableMouse  = "\x1b[?1006l\x1b[?1000l"
	EnableFocus   = "\x1b[?1004h"
	DisableFocus  = "\x1b[?1004l"
	mousePrefix   = "\x1b[<"
	focusIn       = "\x1b[I"
	focusOut      = "\x1b[O"
	maxMouseBytes = 32
)

// MouseButton identifies the button in a mouse report.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseNone
	MouseWheelUp
	MouseWheelDown
)

// Mouse is one decoded SGR mouse report. X and Y are zero-based cells.
type Mouse struct {
	Button  MouseButton
	X, Y    int
	Release bool
	Motion  bool
	Shift   bool
	Alt     bool
	Ctrl    bool
}

// IsPress reports whether m is a button press (not a release, motion or wheel).
func (m Mouse) IsPress() bool {
	return !m.Release && !m.Motion && m.Button <= MouseRight
}

// ParseMouse decodes ESC [ < b ; x ; y (M|m).
func ParseMouse(data string) (Mouse, bool) {
	if !strings.HasPrefix(data, mousePrefix) || len(data) < len(mousePrefix)+6 {
		return Mouse{}, false
	}
	term := data[len(data)-1]
	if term != 'M' && term != 'm' {
		return Mouse{}, false
	}
	parts := strings.Split(data[len(mousePrefix):len(data)-1], ";")
	if len(parts) != 3 {
		return Mouse{}, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Mouse{}, false
		}
		nums[i] = n
	}
	b, x, y := nums[0], nums[1], nums[2]
	if x < 1 || y < 1 {
		return Mouse{}, false
	}

	m := Mouse{
		X:       x - 1,
		Y:       y - 1,
		Release: term == 'm',
		Shift:   b&4 != 0,
		Alt:     b&8 != 0,
		Ctrl:    b&16 != 0,
		Motion:  b&32 != 0,
	}
	switch {
	case b&64 != 0:
		if b&1 != 0 {
			m.Button = MouseWheelDown
		} else {
			m.Button = MouseWheelUp
		}
	default:
		m.Button = MouseButton(b & 3)
	}
	return m, true
}

// IncompleteMouse reports whether data is a prefix of an SGR mouse report
// that needs more bytes.
func IncompleteMouse(data string) bool {
	if !strings.HasPrefix(mousePrefix, data) && !strings.HasPrefix(data, mousePrefix) {
		return false
	}
	if len(data) > maxMouseBytes {
		return false
	}
	return !strings.ContainsAny(data[min(len(data), len(mousePrefix)):], "Mm")
}

// MouseLen returns the length of the SGR mouse report at the start of data,
// or 0 if there is none.
func MouseLen(data string) int {
	if !strings.HasPrefix(data, mousePrefix) {
		return 0
	}
	end := strings.IndexAny(data[len(mousePrefix):], "Mm")
	if end < 0 {
		return 0
	}
	return len(mousePrefix) + end + 1
}
