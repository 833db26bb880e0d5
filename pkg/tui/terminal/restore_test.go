// ABOUTME: Tests for the panic handlers restoring the screen
// ABOUTME: Not parallel: they swap the package's stderr and exit hooks

package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func captureReport(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	oldErr, oldExit := stderr, exit
	stderr, exit = &buf, func(c int) { code = c }
	t.Cleanup(func() { stderr, exit = oldErr, oldExit })
	return &buf, &code
}

func TestRecoverGoroutine_RestoresAndContinues(t *testing.T) {
	buf, code := captureReport(t)
	vt := NewVirtualTerminal(80, 24)
	_ = vt.EnterRawMode()

	func() {
		defer RecoverGoroutine(vt)
		panic("boom")
	}()

	if vt.Raw() || !strings.HasSuffix(vt.Output(), leaveAltScreen) {
		t.Errorf("raw=%v output=%q; want restored screen", vt.Raw(), vt.Output())
	}
	if !strings.Contains(buf.String(), "goroutine panic: boom") {
		t.Errorf("report = %q", buf.String())
	}
	if *code != -1 {
		t.Errorf("RecoverGoroutine exited with %d", *code)
	}
}

func TestRestoreOnPanic_Exits(t *testing.T) {
	buf, code := captureReport(t)
	vt := NewVirtualTerminal(80, 24)
	_ = vt.EnterRawMode()

	func() {
		defer RestoreOnPanic(vt)
		panic("fatal")
	}()

	if *code != 1 {
		t.Errorf("exit code = %d; want 1", *code)
	}
	if vt.Raw() || !strings.Contains(buf.String(), "panic: fatal") {
		t.Errorf("raw=%v report=%q", vt.Raw(), buf.String())
	}
}

func TestPanicHandlers_NoPanic(t *testing.T) {
	buf, code := captureReport(t)
	vt := NewVirtualTerminal(80, 24)
	_ = vt.EnterRawMode()

	func() {
		defer RestoreOnPanic(vt)
		defer RecoverGoroutine(vt)
	}()

	if !vt.Raw() || vt.Output() != "" || buf.Len() != 0 || *code != -1 {
		t.Errorf("handlers acted without a panic: raw=%v out=%q report=%q code=%d", vt.Raw(), vt.Output(), buf.String(), *code)
	}
}
