// ABOUTME: The interfaces the engine dispatches through: rendering, keys, pointer and focus
// ABOUTME: Components opt into input by implementing the narrower interfaces

package tui

import "github.com/pledgeboard/pledge-tui/pkg/tui/key"

// CursorMarker is a zero-width APC sequence a component may embed in a line.
// The engine removes it and parks the hardware cursor there.
const CursorMarker = "\x1b_pt:c\x07"

// Component is anything that draws rows.
type Component interface {
	// Render appends the component's rows to out. No row may be wider than
	// width visible columns.
	Render(out *RenderBuffer, width int)

	// Invalidate drops cached rows so the next Render starts fresh.
	Invalidate()
}

// KeyHandler receives keys while its component has focus. It reports
// whether the key was used.
type KeyHandler interface {
	HandleKey(k key.Key) bool
}

// MouseHandler receives pointer events over its component, with X and Y
// relative to the component's first row and column.
type MouseHandler interface {
	HandleMouse(m key.Mouse) bool
}

// Focusable components take part in focus cycling.
type Focusable interface {
	SetFocused(focused bool)
	IsFocused() bool
}
