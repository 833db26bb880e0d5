// ABOUTME: Tests for startup preparation and the print-and-exit commands
// ABOUTME: Uses a temp settings file so the user's own config is never read

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPrepare_SettingsAndOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := writeFile(t, "config.yaml", "placement: top\nlist_height: 4\n")

	sess, err := prepare(cliArgs{config: cfg, filter: "fuzzy"})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	s := sess.opts.Settings
	if s.Placement != "top" || s.ListHeight != 4 || s.Filter != "fuzzy" {
		t.Errorf("settings = %+v", s)
	}
	if sess.opts.Campaign == nil || sess.opts.Keys == nil {
		t.Error("campaign or keys not prepared")
	}
}

func TestPrepare_ProjectFileInParent(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".pledge-tui.yaml"), []byte("theme: light\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	sess, err := prepare(cliArgs{config: writeFile(t, "config.yaml", "")})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if sess.opts.Settings.Theme != "light" {
		t.Errorf("theme = %q; want light from the parent project file", sess.opts.Settings.Theme)
	}
}

func TestPrepare_CampaignFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := writeFile(t, "config.yaml", "")
	camp := writeFile(t, "camp.yaml", `
title: Tiny
tiers:
  - id: one
    name: One
    amount: 5
`)

	sess, err := prepare(cliArgs{config: cfg, campaign: camp})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if sess.opts.Campaign.Title != "Tiny" {
		t.Errorf("campaign title = %q; want Tiny", sess.opts.Campaign.Title)
	}

	if _, err := prepare(cliArgs{config: cfg, campaign: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("missing campaign file accepted")
	}
}

func TestRun_ListKeysAndTemplate(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := writeFile(t, "config.yaml", "keybindings:\n  next: [j]\n")

	var out bytes.Buffer
	if err := run(cliArgs{config: cfg, listKeys: true}, &out); err != nil {
		t.Fatalf("run --list-keys: %v", err)
	}
	if !strings.Contains(out.String(), "  j  ") {
		t.Errorf("--list-keys output lacks the custom binding:\n%s", out.String())
	}

	out.Reset()
	if err := run(cliArgs{config: cfg, keysTemplate: true}, &out); err != nil {
		t.Fatalf("run --keybindings-template: %v", err)
	}
	if !strings.HasPrefix(out.String(), "keybindings:") {
		t.Errorf("template = %q", out.String())
	}
}
