// ABOUTME: ProcessTerminal is the controlling terminal: stdin for raw mode, stdout for output and size
// ABOUTME: Resize notifications come from a platform watcher started on the first OnResize

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal implements Terminal on the process's stdin and stdout.
type ProcessTerminal struct {
	in, out *os.File

	mu       sync.Mutex
	saved    *term.State
	onResize func(width, height int)
	watching bool
	stop     func()
}

func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{in: os.Stdin, out: os.Stdout}
}

// EnterRawMode puts stdin in raw mode. Calling it again while raw is a no-op.
func (t *ProcessTerminal) EnterRawMode() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin: %w", ErrNotTerminal)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saved != nil {
		return nil
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.saved = st
	return nil
}

// ExitRawMode restores the state saved by EnterRawMode.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.saved == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.saved); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.saved = nil
	return nil
}

func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

func (t *ProcessTerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// OnResize sets the resize callback and starts watching on first use.
func (t *ProcessTerminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = fn
	if !t.watching {
		t.watching = true
		t.stop = watchResize(t.Size, t.resized)
	}
}

func (t *ProcessTerminal) resized(width, height int) {
	t.mu.Lock()
	fn := t.onResize
	t.mu.Unlock()
	if fn != nil {
		fn(width, height)
	}
}

// Close stops the resize watcher. Raw mode is left to ExitRawMode.
func (t *ProcessTerminal) Close() error {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
	return nil
}
