// ABOUTME: The active theme, swapped atomically when settings change
// ABOUTME: Named themes are dark and light; Select falls back to the detected background

package theme

import "sync/atomic"

var current atomic.Pointer[Theme]

func init() {
	current.Store(Dark())
}

// Current returns the active theme. Never returns nil.
func Current() *Theme {
	return current.Load()
}

// Set replaces the active theme. Set(nil) is ignored.
func Set(t *Theme) {
	if t != nil {
		current.Store(t)
	}
}

// Named returns the built-in theme called name.
func Named(name string) (*Theme, bool) {
	switch name {
	case "dark":
		return Dark(), true
	case "light":
		return Light(), true
	}
	return nil, false
}

// Select picks the theme for a settings value: a known name wins, anything
// else follows the terminal background.
func Select(name string, darkBackground bool) *Theme {
	if t, ok := Named(name); ok {
		return t
	}
	if darkBackground {
		return Dark()
	}
	return Light()
}
