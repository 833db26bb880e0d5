// ABOUTME: Panic handlers that put the terminal back before reporting the panic
// ABOUTME: RestoreOnPanic exits the process; RecoverGoroutine returns so main can shut down

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

const panicReset = key.DisableMouse + key.DisableFocus + showCursor + leaveAltScreen

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// RestoreOnPanic is deferred by the goroutine that owns t. On panic it
// restores the screen, prints the stack and exits with status 1.
func RestoreOnPanic(t Terminal) {
	if r := recover(); r != nil {
		report(t, "panic", r)
		exit(1)
	}
}

// RecoverGoroutine is deferred by helper goroutines. It restores the screen
// and prints the stack but lets the process continue.
func RecoverGoroutine(t Terminal) {
	if r := recover(); r != nil {
		report(t, "goroutine panic", r)
	}
}

func report(t Terminal, what string, r any) {
	_, _ = io.WriteString(t, panicReset)
	_ = t.ExitRawMode()
	fmt.Fprintf(stderr, "\n%s: %v\n\n%s\n", what, r, debug.Stack())
}
