// ABOUTME: Decides the terminal background before bubbletea's init can query it
// ABOUTME: Import with _ ahead of bubbletea; reads COLORFGBG instead of sending OSC 11

package termfix

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var dark = true

func init() {
	dark = darkFromEnv(os.Getenv("COLORFGBG"))
	// Setting the background explicitly stops lipgloss from sending OSC 10/11
	// queries whose replies would land in the input stream. This package must
	// not import bubbletea so its init runs first.
	lipgloss.SetHasDarkBackground(dark)
}

// DarkBackground reports the background chosen at startup.
func DarkBackground() bool { return dark }

// darkFromEnv reads the "fg;bg" (or "fg;default;bg") form some terminals
// export. Colors 0-6 and 8 are dark; anything unparseable counts as dark.
func darkFromEnv(v string) bool {
	if v == "" {
		return true
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return true
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}
