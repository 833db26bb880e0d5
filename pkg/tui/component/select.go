// ABOUTME: Select is a searchable single-choice field with a floating option list
// ABOUTME: The trigger is a focusable inline row; the list is a tui.Layer placed by an overlay host

package component

import (
	"strings"
	"sync"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
	"github.com/pledgeboard/pledge-tui/pkg/tui/listbox"
	"github.com/pledgeboard/pledge-tui/pkg/tui/overlay"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

const (
	defaultListHeight  = 6
	minSelectWidth     = 16
	selectChrome       = 6 // "[ " + " ▾ ]"
	searchPlaceholder  = "Type to search"
	defaultPlaceholder = "Select…"
)

// SelectConfig configures a Select.
type SelectConfig struct {
	// ID names the list layer; it must be unique per screen.
	ID          string
	Placeholder string
	Options     []listbox.Option
	// Value is the initially committed value. Set HasValue to commit "".
	Value     string
	HasValue  bool
	Placement geom.Placement
	Filter    listbox.Filter
	// ListHeight is the number of option rows shown; 0 means 6.
	ListHeight int
	// Width is the trigger and list width; 0 fits the longest label.
	Width      int
	Flip       bool
	Clamp      bool
	Controlled bool
	Disabled   bool
	NoSearch   bool
	KeyMap     KeyMap

	OnChange     func(value string)
	OnOpenChange func(open bool)
}

// Select is a searchable combobox.
type Select struct {
	screen  Screen
	cfg     SelectConfig
	machine *listbox.Machine
	frame   *Frame
	width   int
	// trigger is the component whose bounds anchor the list.
	trigger tui.Component

	mu      sync.Mutex
	focused bool
}

// NewSelect creates a Select and registers its list layer on screen.
func NewSelect(screen Screen, cfg SelectConfig) *Select {
	if cfg.ListHeight <= 0 {
		cfg.ListHeight = defaultListHeight
	}
	if cfg.KeyMap == nil {
		cfg.KeyMap = DefaultKeyMap
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = defaultPlaceholder
	}

	s := &Select{screen: screen, cfg: cfg, width: cfg.Width}
	s.trigger = s
	if s.width <= 0 {
		s.width = fitWidth(cfg.Placeholder, cfg.Options)
	}

	s.machine = listbox.NewMachine(screen.Controller(), screen, overlay.Config{
		ID:        cfg.ID,
		Placement: cfg.Placement,
		Trigger:   func() (geom.Rect, bool) { return screen.Bounds(s.trigger) },
		Content:   func() (geom.Rect, bool) { return screen.LayerSize(cfg.ID) },
		Viewport:  screen.Viewport,
		Flip:      cfg.Flip,
		Clamp:     cfg.Clamp,
		OnPosition: func(geom.Position) {
			screen.RequestRender()
		},
	}, listbox.Config{
		Options:    cfg.Options,
		Filter:     cfg.Filter,
		ViewHeight: cfg.ListHeight,
		NoSearch:   cfg.NoSearch,
		Controlled: cfg.Controlled,
		Value:      cfg.Value,
		HasValue:   cfg.HasValue,
		OnChange:   cfg.OnChange,
		OnOpenChange: func(open bool) {
			screen.RequestRender()
			if cfg.OnOpenChange != nil {
				cfg.OnOpenChange(open)
			}
		},
	})
	if cfg.Disabled {
		s.machine.Host().SetDisabled(true)
	}

	s.frame = NewFrame(NewOptionList(s.machine, cfg.ListHeight))
	screen.AddLayer(tui.Layer{
		ID:        cfg.ID,
		Component: s.frame,
		Width:     s.width,
		MaxHeight: cfg.ListHeight + 3,
		Position:  s.machine.Host().Position,
	})
	return s
}

// fitWidth returns a width wide enough for the placeholder and every label.
func fitWidth(placeholder string, options []listbox.Option) int {
	w := width.VisibleWidth(placeholder)
	for _, o := range options {
		w = max(w, width.VisibleWidth(o.Label)+len(checkMark))
	}
	return max(w+selectChrome, minSelectWidth)
}

// Machine exposes the underlying list machine.
func (s *Select) Machine() *listbox.Machine { return s.machine }

// Value returns the committed value.
func (s *Select) Value() (string, bool) { return s.machine.Value() }

// SetValue sets the committed value. Controlled owners call this from OnChange.
func (s *Select) SetValue(v string) {
	s.machine.SetValue(v)
	s.screen.RequestRender()
}

// SetOptions replaces the options; the highlight follows its value.
func (s *Select) SetOptions(options []listbox.Option) {
	s.machine.SetOptions(options)
	s.screen.RequestRender()
}

// SetDisabled enables or disables the field. Disabling closes an open list.
func (s *Select) SetDisabled(disabled bool) {
	s.machine.Host().SetDisabled(disabled)
	s.screen.RequestRender()
}

// SetPlacement changes where the list opens relative to the trigger.
func (s *Select) SetPlacement(p geom.Placement) {
	s.machine.Host().SetPlacement(p)
}

// Close closes the list without committing.
func (s *Select) Close() {
	s.machine.Escape()
}

// Detach removes the list layer and closes the list.
func (s *Select) Detach() {
	s.Close()
	s.screen.RemoveLayer(s.cfg.ID)
}

// SetFocused implements tui.Focusable. Losing focus closes the list.
func (s *Select) SetFocused(focused bool) {
	s.mu.Lock()
	s.focused = focused
	s.mu.Unlock()
	if !focused {
		s.Close()
	}
}

// IsFocused implements tui.Focusable.
func (s *Select) IsFocused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Render draws the trigger row.
func (s *Select) Render(out *tui.RenderBuffer, w int) {
	w = min(w, s.width)
	if w < selectChrome {
		return
	}
	p := theme.Current().Palette
	st := s.machine.State()
	field := w - selectChrome

	var text string
	switch {
	case st.Open && !s.cfg.NoSearch:
		if st.SearchTerm == "" {
			text = tui.CursorMarker + p.Placeholder.Apply(width.TruncateToWidth(searchPlaceholder, field))
		} else {
			text = width.TruncateToWidth(st.SearchTerm, field-1) + tui.CursorMarker
		}
	case st.HasCommitted:
		text = width.TruncateToWidth(s.machine.Label(), field)
	default:
		text = p.Placeholder.Apply(width.TruncateToWidth(s.cfg.Placeholder, field))
	}
	if !s.IsFocused() {
		text = strings.Replace(text, tui.CursorMarker, "", 1)
	}
	if pad := field - width.VisibleWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}

	arrow := "▾"
	if st.Open {
		arrow = "▴"
	}
	left, right := "[ ", " "+arrow+" ]"
	switch {
	case s.machine.Host().Disabled():
		out.WriteLine(p.Disabled.Apply(left + width.StripANSI(text) + right))
		return
	case s.IsFocused():
		left, right = p.Focus.Apply(left), p.Focus.Apply(right)
	}
	out.WriteLine(left + text + right)
}

// Invalidate is a no-op; the trigger renders from machine state.
func (s *Select) Invalidate() {}

// HandleKey implements tui.KeyHandler.
func (s *Select) HandleKey(k key.Key) bool {
	if s.machine.Host().Disabled() {
		return false
	}
	action := s.cfg.KeyMap.Action(k)
	searchable := !s.cfg.NoSearch && k.Type == key.KeyRune && !k.Ctrl && !k.Alt

	if !s.machine.State().Open {
		switch {
		case action == ActionOpen || action == ActionCommit:
			s.machine.Open()
		case action == ActionNext || action == ActionFirst:
			s.machine.Open()
			s.machine.Navigate(listbox.First)
		case action == ActionPrev || action == ActionLast:
			s.machine.Open()
			s.machine.Navigate(listbox.Last)
		case searchable:
			s.machine.Open()
			s.machine.Type(k.Rune)
		default:
			return false
		}
		return true
	}

	switch action {
	case ActionNext:
		s.machine.Navigate(listbox.Next)
	case ActionPrev:
		s.machine.Navigate(listbox.Prev)
	case ActionFirst:
		s.machine.Navigate(listbox.First)
	case ActionLast:
		s.machine.Navigate(listbox.Last)
	case ActionCommit:
		s.machine.Commit()
	case ActionDismiss:
		s.machine.Escape()
	case ActionBackspace:
		s.machine.Backspace()
	default:
		if !searchable {
			return false
		}
		s.machine.Type(k.Rune)
	}
	return true
}

// HandleMouse toggles the list on a press.
func (s *Select) HandleMouse(m key.Mouse) bool {
	if !m.IsPress() || m.Button != key.MouseLeft {
		return false
	}
	s.machine.Toggle()
	return true
}
