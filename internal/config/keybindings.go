// ABOUTME: Keybinding action names and defaults for the overlay widgets
// ABOUTME: Overrides come from the keybindings section of the settings files

package config

import (
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// KeyAction represents an action that can be bound to keys
type KeyAction string

const (
	ActionOpen      KeyAction = "open"
	ActionNext      KeyAction = "next"
	ActionPrev      KeyAction = "prev"
	ActionFirst     KeyAction = "first"
	ActionLast      KeyAction = "last"
	ActionCommit    KeyAction = "commit"
	ActionDismiss   KeyAction = "dismiss"
	ActionBackspace KeyAction = "backspace"
	ActionFocusNext KeyAction = "focusNext"
	ActionFocusPrev KeyAction = "focusPrev"
	ActionQuit      KeyAction = "quit"
)

// Keybindings represents the keybindings configuration
type Keybindings struct {
	Bindings map[KeyAction][]string
}

// NewKeybindings creates a new Keybindings with default bindings
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string),
	}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionOpen] = []string{"alt+down"}
	kb.Bindings[ActionNext] = []string{"down", "ctrl+n"}
	kb.Bindings[ActionPrev] = []string{"up", "ctrl+p"}
	kb.Bindings[ActionFirst] = []string{"home"}
	kb.Bindings[ActionLast] = []string{"end"}
	kb.Bindings[ActionCommit] = []string{"enter"}
	kb.Bindings[ActionDismiss] = []string{"escape"}
	kb.Bindings[ActionBackspace] = []string{"backspace"}
	kb.Bindings[ActionFocusNext] = []string{"tab"}
	kb.Bindings[ActionFocusPrev] = []string{"shift+tab"}
	kb.Bindings[ActionQuit] = []string{"ctrl+c", "ctrl+d"}
}

// FromSettings returns the defaults overridden by the settings map.
// Unknown action names are ignored and returned.
func FromSettings(raw map[string][]string) (*Keybindings, []string) {
	kb := NewKeybindings()
	var unknown []string
	for name, keys := range raw {
		action := KeyAction(name)
		if _, ok := kb.Bindings[action]; !ok {
			unknown = append(unknown, name)
			continue
		}
		kb.Bindings[action] = keys
	}
	slices.Sort(unknown)
	return kb, unknown
}

// GetBindings returns the bindings for an action
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// Actions returns every action name in sorted order.
func (kb *Keybindings) Actions() []KeyAction {
	return slices.Sorted(maps.Keys(kb.Bindings))
}

// ExportTemplate renders the bindings as a YAML keybindings section.
func (kb *Keybindings) ExportTemplate() (string, error) {
	raw := make(map[string][]string, len(kb.Bindings))
	for action, keys := range kb.Bindings {
		raw[string(action)] = keys
	}
	data, err := yaml.Marshal(map[string]any{"keybindings": raw})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
