// ABOUTME: Tests for keybindings manager
// ABOUTME: Validates key lookup, widget action mapping, conflicts, reload, and format

package keybindings

import (
	"strings"
	"testing"

	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/pkg/tui/component"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

func TestManager_DefaultBindings(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	tests := []struct {
		key    key.Key
		action config.KeyAction
	}{
		{key.Key{Type: key.KeyDown}, config.ActionNext},
		{key.Key{Type: key.KeyCtrlN, Ctrl: true}, config.ActionNext},
		{key.Key{Type: key.KeyCtrlP, Ctrl: true}, config.ActionPrev},
		{key.Key{Type: key.KeyEnter}, config.ActionCommit},
		{key.Key{Type: key.KeyEscape}, config.ActionDismiss},
		{key.Key{Type: key.KeyDown, Alt: true}, config.ActionOpen},
		{key.Key{Type: key.KeyTab}, config.ActionFocusNext},
		{key.Key{Type: key.KeyBackTab}, config.ActionFocusPrev},
		{key.Key{Type: key.KeyCtrlC, Ctrl: true}, config.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got := m.ActionForKey(tt.key)
			if got != tt.action {
				t.Errorf("ActionForKey(%+v) = %q; want %q", tt.key, got, tt.action)
			}
		})
	}
}

func TestManager_UnboundKey(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())

	if action := m.ActionForKey(key.Key{Type: key.KeyRune, Rune: 'z'}); action != "" {
		t.Errorf("expected empty action for unbound key, got %q", action)
	}
	if a := m.Action(key.Key{Type: key.KeyRune, Rune: 'z'}); a != component.ActionNone {
		t.Errorf("Action(z) = %v; want none", a)
	}
}

func TestManager_WidgetActions(t *testing.T) {
	t.Parallel()
	m, unknown := New(map[string][]string{"next": {"j"}, "prev": {"k"}})
	if len(unknown) != 0 {
		t.Fatalf("unknown = %v", unknown)
	}

	if a := m.Action(key.Key{Type: key.KeyRune, Rune: 'j'}); a != component.ActionNext {
		t.Errorf("Action(j) = %v; want next", a)
	}
	if a := m.Action(key.Key{Type: key.KeyDown}); a != component.ActionNone {
		t.Errorf("Action(down) = %v; overridden binding should be gone", a)
	}
	if a := m.Action(key.Key{Type: key.KeyTab}); a != component.ActionNone {
		t.Errorf("Action(tab) = %v; page actions are not widget actions", a)
	}
}

func TestManager_Conflicts(t *testing.T) {
	t.Parallel()
	m, _ := New(map[string][]string{"commit": {"enter", "space"}, "open": {"space"}})

	conflicts := m.Conflicts()
	if len(conflicts) != 1 || conflicts[0].Key != "space" {
		t.Fatalf("conflicts = %+v; want one on space", conflicts)
	}
	if got := conflicts[0].Actions; len(got) != 2 || got[0] != config.ActionCommit || got[1] != config.ActionOpen {
		t.Errorf("actions = %v", got)
	}
}

func TestManager_Reload(t *testing.T) {
	t.Parallel()
	m, _ := New(nil)

	unknown := m.Reload(map[string][]string{"commit": {"ctrl+o"}, "bogus": {"x"}})
	if len(unknown) != 1 || unknown[0] != "bogus" {
		t.Errorf("unknown = %v", unknown)
	}
	if a := m.ActionForKey(key.Key{Type: key.KeyCtrlO, Ctrl: true}); a != config.ActionCommit {
		t.Errorf("expected commit after reload, got %q", a)
	}
	if a := m.ActionForKey(key.Key{Type: key.KeyEnter}); a != "" {
		t.Errorf("enter still bound to %q after reload", a)
	}
}

func TestManager_FormatAll(t *testing.T) {
	t.Parallel()
	m := NewFromBindings(config.NewKeybindings())
	output := m.FormatAll()

	for _, want := range []string{"Keybindings:", "## Overlay", "## Navigation", "down, ctrl+n", "commit"} {
		if !strings.Contains(output, want) {
			t.Errorf("FormatAll output missing %q", want)
		}
	}
}

func TestKeyToString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		k    key.Key
		want string
	}{
		{key.Key{Type: key.KeyCtrlG, Ctrl: true}, "ctrl+g"},
		{key.Key{Type: key.KeyCtrlN, Ctrl: true}, "ctrl+n"},
		{key.Key{Type: key.KeyEnter}, "enter"},
		{key.Key{Type: key.KeyEnter, Alt: true}, "alt+enter"},
		{key.Key{Type: key.KeyDown, Alt: true}, "alt+down"},
		{key.Key{Type: key.KeyRune, Rune: '@'}, "@"},
		{key.Key{Type: key.KeyBackTab}, "shift+tab"},
		{key.Key{Type: key.KeyBackTab, Shift: true}, "shift+tab"},
		{key.Key{Type: key.KeyRight, Ctrl: true, Shift: true}, "ctrl+shift+right"},
		{key.Key{Type: key.KeyRune, Rune: 'x', Alt: true}, "alt+x"},
		{key.Key{Type: key.KeyEscape}, "escape"},
		{key.Key{Type: key.KeyBackspace}, "backspace"},
		{key.Key{Type: key.KeyMouse}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := keyToString(tt.k)
			if got != tt.want {
				t.Errorf("keyToString(%+v) = %q; want %q", tt.k, got, tt.want)
			}
		})
	}
}
