// ABOUTME: Clipboard writes through the first available platform helper, else an OSC 52 sequence
// ABOUTME: Helpers are looked up on PATH: pbcopy, wl-copy, xclip, xsel

package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned when no helper exists and no terminal is set.
var ErrUnavailable = errors.New("clipboard: no helper found")

type helper struct {
	name string
	args []string
}

var helpers = []helper{
	{name: "pbcopy"},
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
}

// Clipboard copies text for the user.
type Clipboard struct {
	terminal io.Writer
	lookPath func(string) (string, error)
	run      func(path string, args []string, stdin string) error
}

// New returns a Clipboard that falls back to writing OSC 52 to terminal.
// A nil terminal disables the fallback.
func New(terminal io.Writer) *Clipboard {
	return &Clipboard{terminal: terminal, lookPath: exec.LookPath, run: runHelper}
}

// Write copies text to the system clipboard.
func (c *Clipboard) Write(text string) error {
	for _, h := range helpers {
		path, err := c.lookPath(h.name)
		if err != nil {
			continue
		}
		if err := c.run(path, h.args, text); err != nil {
			return fmt.Errorf("clipboard: %s: %w", h.name, err)
		}
		return nil
	}
	if c.terminal == nil {
		return ErrUnavailable
	}
	_, err := io.WriteString(c.terminal, OSC52(text))
	return err
}

// OSC52 returns the terminal sequence that sets the clipboard to text.
func OSC52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}

func runHelper(path string, args []string, stdin string) error {
	c := exec.Command(path, args...)
	c.Stdin = strings.NewReader(stdin)
	return c.Run()
}
