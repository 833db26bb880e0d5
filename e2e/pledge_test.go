//go:build e2e

// ABOUTME: End-to-end tests for the pledge page through the real binary on a pty
// ABOUTME: Covers typing into the tier select, escape, both backends and quitting

package e2e

import (
	"testing"
	"time"
)

const (
	keyDown  = "\x1b[B"
	keyEnter = "\r"
	keyEsc   = "\x1b"
)

func TestPledge_FilterAndCommitTier(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := start(t)
	defer s.close()

	s.expectStringTimeout(t, "Choose a reward tier", 5*time.Second)

	s.send(t, "deluxe")
	s.expectStringTimeout(t, "Deluxe Box (149 USD)", 5*time.Second)

	s.send(t, keyDown+keyEnter)
	s.expectStringTimeout(t, "Pledge: Deluxe Box, 149 USD", 5*time.Second)

	s.sendCtrl(t, 'c')
	s.waitExit(t, 5*time.Second)
}

func TestPledge_EscapeClosesThenQuits(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := start(t)
	defer s.close()

	s.expectStringTimeout(t, "Choose a reward tier", 5*time.Second)
	s.send(t, keyDown)
	s.expectStringTimeout(t, "Early Bird", 5*time.Second)

	s.send(t, keyEsc)
	s.reset()
	s.send(t, "coll")
	s.expectStringTimeout(t, "Collector's Bundle", 5*time.Second)

	s.sendCtrl(t, 'd')
	s.waitExit(t, 5*time.Second)
}

func TestPledge_BubbleteaBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := start(t, "--backend", "bubbletea")
	defer s.close()

	s.expectStringTimeout(t, "Choose a reward tier", 5*time.Second)
	s.expectStringTimeout(t, "bubbletea", 5*time.Second)

	s.send(t, keyDown)
	s.expectStringTimeout(t, "Patron of the Arts", 5*time.Second)

	s.sendCtrl(t, 'c')
	s.waitExit(t, 5*time.Second)
}

func TestPledge_VersionFlag(t *testing.T) {
	s := start(t, "--version")
	defer s.close()

	s.expectStringTimeout(t, "pledge-tui dev", 5*time.Second)
	s.waitExit(t, 5*time.Second)
}
