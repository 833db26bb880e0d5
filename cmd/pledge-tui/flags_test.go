// ABOUTME: Tests for CLI flag parsing, validation and settings overrides
// ABOUTME: Table-driven over accepted and rejected argument lists

package main

import (
	"errors"
	"io"
	"testing"

	"github.com/spf13/pflag"

	"github.com/pledgeboard/pledge-tui/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		argv    []string
		wantErr bool
		check   func(t *testing.T, a cliArgs)
	}{
		{
			name: "defaults",
			argv: nil,
			check: func(t *testing.T, a cliArgs) {
				if a.backend != backendRaw || a.debug || a.placement != "" {
					t.Errorf("defaults = %+v", a)
				}
			},
		},
		{
			name: "all values",
			argv: []string{"--campaign", "c.yaml", "--config", "s.yaml", "--placement", "top-end", "--filter", "fuzzy", "--backend", "bubbletea", "-d", "--log-file", "x.log"},
			check: func(t *testing.T, a cliArgs) {
				if a.campaign != "c.yaml" || a.config != "s.yaml" || a.placement != "top-end" ||
					a.filter != "fuzzy" || a.backend != backendBubbletea || !a.debug || a.logFile != "x.log" {
					t.Errorf("parsed = %+v", a)
				}
			},
		},
		{name: "bad backend", argv: []string{"--backend", "curses"}, wantErr: true},
		{name: "bad placement", argv: []string{"--placement", "sideways"}, wantErr: true},
		{name: "bad filter", argv: []string{"--filter", "regex"}, wantErr: true},
		{name: "positional", argv: []string{"extra"}, wantErr: true},
		{name: "unknown flag", argv: []string{"--nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := parseFlags(tt.argv, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags(%v) error = %v; wantErr %v", tt.argv, err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, a)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags([]string{"--help"}, io.Discard); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("--help error = %v; want pflag.ErrHelp", err)
	}
}

func TestCLIArgs_Overrides(t *testing.T) {
	t.Parallel()

	s := config.Defaults()
	cliArgs{placement: "right", filter: config.FilterFuzzy, debug: true}.overrides(s)
	if s.Placement != "right" || s.Filter != config.FilterFuzzy || s.LogLevel != "debug" {
		t.Errorf("overridden = %+v", s)
	}

	s = config.Defaults()
	cliArgs{}.overrides(s)
	if s.Placement != "bottom-start" || s.Filter != config.FilterSubstring {
		t.Errorf("empty flags changed settings: %+v", s)
	}
}
