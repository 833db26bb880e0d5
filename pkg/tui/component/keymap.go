// ABOUTME: KeyMap translates keys into overlay widget actions
// ABOUTME: DefaultKeyMap covers arrows, Emacs-style Ctrl+N/P, Enter, Escape and Backspace

package component

import "github.com/pledgeboard/pledge-tui/pkg/tui/key"

// Action is a widget-level command produced by a KeyMap.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionNext
	ActionPrev
	ActionFirst
	ActionLast
	ActionCommit
	ActionDismiss
	ActionBackspace
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionOpen:      "open",
	ActionNext:      "next",
	ActionPrev:      "prev",
	ActionFirst:     "first",
	ActionLast:      "last",
	ActionCommit:    "commit",
	ActionDismiss:   "dismiss",
	ActionBackspace: "backspace",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "none"
}

// ParseAction returns the Action with the given name.
func ParseAction(name string) (Action, bool) {
	for a, s := range actionNames {
		if s == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// KeyMap resolves a key to a widget action.
type KeyMap interface {
	Action(k key.Key) Action
}

// KeyMapFunc adapts a function to KeyMap.
type KeyMapFunc func(k key.Key) Action

// Action calls f(k).
func (f KeyMapFunc) Action(k key.Key) Action { return f(k) }

// DefaultKeyMap is used when a widget is given no KeyMap.
var DefaultKeyMap KeyMap = KeyMapFunc(func(k key.Key) Action {
	switch k.Type {
	case key.KeyDown, key.KeyCtrlN:
		return ActionNext
	case key.KeyUp, key.KeyCtrlP:
		return ActionPrev
	case key.KeyHome:
		return ActionFirst
	case key.KeyEnd:
		return ActionLast
	case key.KeyEnter:
		return ActionCommit
	case key.KeyEscape:
		return ActionDismiss
	case key.KeyBackspace:
		return ActionBackspace
	}
	return ActionNone
})
