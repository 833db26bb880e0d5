// ABOUTME: Screen session and report toggles written to the terminal
// ABOUTME: Reporting turns focus reports on while overlays are open; Session owns alt-screen and mouse

package terminal

import (
	"io"
	"sync"

	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

const (
	enterAltScreen = "\x1b[?1049h\x1b[H"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
)

// Reporting enables terminal focus reports while installed. It is the
// screen-level listener handed to the dismissal controller.
type Reporting struct {
	mu     sync.Mutex
	w      io.Writer
	active bool
}

// NewReporting returns a Reporting writing to w.
func NewReporting(w io.Writer) *Reporting {
	return &Reporting{w: w}
}

// Install turns focus reports on.
func (r *Reporting) Install() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return
	}
	r.active = true
	_, _ = io.WriteString(r.w, key.EnableFocus)
}

// Uninstall turns focus reports off.
func (r *Reporting) Uninstall() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.active = false
	_, _ = io.WriteString(r.w, key.DisableFocus)
}

// Active reports whether focus reports are on.
func (r *Reporting) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// EnterSession puts t in raw mode on the alternate screen with mouse
// reporting enabled. The returned func undoes all of it.
func EnterSession(t Terminal) (restore func(), err error) {
	if err := t.EnterRawMode(); err != nil {
		return nil, err
	}
	_, _ = t.Write([]byte(enterAltScreen + hideCursor + key.EnableMouse))

	var once sync.Once
	return func() {
		once.Do(func() {
			_, _ = t.Write([]byte(key.DisableMouse + key.DisableFocus + showCursor + leaveAltScreen))
			_ = t.ExitRawMode()
		})
	}, nil
}
