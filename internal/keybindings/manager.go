// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Implements component.KeyMap so widgets follow user overrides; detects conflicts

package keybindings

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pledgeboard/pledge-tui/internal/config"
	"github.com/pledgeboard/pledge-tui/pkg/tui/component"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	mu       sync.RWMutex
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction // "ctrl+n" → ActionNext
}

var _ component.KeyMap = (*Manager)(nil)

// widgetActions maps config actions onto widget actions.
var widgetActions = map[config.KeyAction]component.Action{
	config.ActionOpen:      component.ActionOpen,
	config.ActionNext:      component.ActionNext,
	config.ActionPrev:      component.ActionPrev,
	config.ActionFirst:     component.ActionFirst,
	config.ActionLast:      component.ActionLast,
	config.ActionCommit:    component.ActionCommit,
	config.ActionDismiss:   component.ActionDismiss,
	config.ActionBackspace: component.ActionBackspace,
}

// New creates a Manager from the keybindings section of the settings.
// Unknown action names are returned so the caller can warn about them.
func New(raw map[string][]string) (*Manager, []string) {
	kb, unknown := config.FromSettings(raw)
	return NewFromBindings(kb), unknown
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(k key.Key) config.KeyAction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup[keyToString(k)]
}

// Action implements component.KeyMap.
func (m *Manager) Action(k key.Key) component.Action {
	return widgetActions[m.ActionForKey(k)]
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keyActions := make(map[string][]config.KeyAction)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			keyActions[k] = append(keyActions[k], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			slices.Sort(actions)
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int { return strings.Compare(a.Key, b.Key) })
	return conflicts
}

// Reload rebuilds the bindings from a new settings section.
func (m *Manager) Reload(raw map[string][]string) []string {
	kb, unknown := config.FromSettings(raw)
	m.mu.Lock()
	m.bindings = kb
	m.mu.Unlock()
	m.buildLookup()
	return unknown
}

// FormatAll returns a formatted table of all keybindings for --list-keys.
func (m *Manager) FormatAll() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Keybindings:\n\n")

	categories := []struct {
		name    string
		actions []config.KeyAction
	}{
		{"Overlay", []config.KeyAction{
			config.ActionOpen, config.ActionCommit, config.ActionDismiss,
		}},
		{"Navigation", []config.KeyAction{
			config.ActionNext, config.ActionPrev,
			config.ActionFirst, config.ActionLast,
		}},
		{"Search", []config.KeyAction{config.ActionBackspace}},
		{"Page", []config.KeyAction{
			config.ActionFocusNext, config.ActionFocusPrev, config.ActionQuit,
		}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n", cat.name)
		for _, action := range cat.actions {
			keys := m.bindings.GetBindings(action)
			if len(keys) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-20s %s\n", strings.Join(keys, ", "), action)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Manager) buildLookup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookup = make(map[string]config.KeyAction, len(m.bindings.Bindings)*2)
	// Sorted so a key shared by two actions resolves the same way every run.
	for _, action := range m.bindings.Actions() {
		for _, k := range m.bindings.Bindings[action] {
			if _, taken := m.lookup[k]; !taken {
				m.lookup[k] = action
			}
		}
	}
}

// keyNames spells key types the way keybinding configs do. Ctrl letters
// carry their modifier in the name.
var keyNames = map[key.KeyType]string{
	key.KeyEnter:     "enter",
	key.KeyTab:       "tab",
	key.KeyBackTab:   "shift+tab",
	key.KeyBackspace: "backspace",
	key.KeyDelete:    "delete",
	key.KeyUp:        "up",
	key.KeyDown:      "down",
	key.KeyLeft:      "left",
	key.KeyRight:     "right",
	key.KeyHome:      "home",
	key.KeyEnd:       "end",
	key.KeyPageUp:    "pgup",
	key.KeyPageDown:  "pgdown",
	key.KeyEscape:    "escape",
	key.KeyCtrlC:     "ctrl+c",
	key.KeyCtrlD:     "ctrl+d",
	key.KeyCtrlG:     "ctrl+g",
	key.KeyCtrlL:     "ctrl+l",
	key.KeyCtrlN:     "ctrl+n",
	key.KeyCtrlO:     "ctrl+o",
	key.KeyCtrlP:     "ctrl+p",
	key.KeyCtrlR:     "ctrl+r",
}

// keyToString renders k as a binding string such as "alt+down" or "j".
// Mouse and focus events have no binding form and return "".
func keyToString(k key.Key) string {
	name := keyNames[k.Type]
	if k.Type == key.KeyRune {
		name = string(k.Rune)
	}
	if name == "" {
		return ""
	}
	if strings.Contains(name, "+") {
		return name
	}

	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(name)
	return b.String()
}
