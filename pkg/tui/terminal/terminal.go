// ABOUTME: Terminal is the screen the engine writes to and the session helpers configure
// ABOUTME: ProcessTerminal drives the real TTY; VirtualTerminal records output for tests

package terminal

import (
	"errors"
	"io"
)

// ErrNotTerminal is returned when raw mode is requested on input that is not a TTY.
var ErrNotTerminal = errors.New("not a terminal")

// Terminal is a screen that can switch its input to raw mode and report
// its size.
type Terminal interface {
	io.Writer
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	// OnResize replaces the resize callback.
	OnResize(fn func(width, height int))
}
