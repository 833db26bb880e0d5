// ABOUTME: VirtualTerminal is an in-memory Terminal for tests
// ABOUTME: Records output and raw-mode exits; Resize drives the resize callback

package terminal

import (
	"bytes"
	"sync"
)

// VirtualTerminal implements Terminal without a TTY.
type VirtualTerminal struct {
	mu       sync.Mutex
	out      bytes.Buffer
	w, h     int
	raw      bool
	exits    int
	onResize func(width, height int)
}

func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{w: width, h: height}
}

func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	v.raw = true
	v.mu.Unlock()
	return nil
}

// ExitRawMode leaves raw mode; only calls made while raw are counted.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	if v.raw {
		v.exits++
	}
	v.raw = false
	v.mu.Unlock()
	return nil
}

func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.h, nil
}

func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.Write(p)
}

func (v *VirtualTerminal) OnResize(fn func(width, height int)) {
	v.mu.Lock()
	v.onResize = fn
	v.mu.Unlock()
}

// Resize changes the size and calls the resize callback, if any.
func (v *VirtualTerminal) Resize(width, height int) {
	v.mu.Lock()
	v.w, v.h = width, height
	fn := v.onResize
	v.mu.Unlock()
	if fn != nil {
		fn(width, height)
	}
}

// Output returns everything written since the last Reset.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.String()
}

func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	v.out.Reset()
	v.mu.Unlock()
}

// Raw reports whether raw mode is on.
func (v *VirtualTerminal) Raw() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw
}

// Exits returns how many times raw mode was left.
func (v *VirtualTerminal) Exits() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.exits
}
