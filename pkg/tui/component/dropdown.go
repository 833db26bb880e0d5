// ABOUTME: Dropdown is an action menu behind a fixed-label button
// ABOUTME: Built on Select with search off and commits reported only, so no value sticks

package component

import (
	"strconv"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
	"github.com/pledgeboard/pledge-tui/pkg/tui/listbox"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// MenuItem is one dropdown entry.
type MenuItem struct {
	Label  string
	Action func()
}

// DropdownConfig configures a Dropdown.
type DropdownConfig struct {
	ID        string
	Label     string
	Items     []MenuItem
	Placement geom.Placement
	Flip      bool
	Clamp     bool
	Disabled  bool
	KeyMap    KeyMap

	OnOpenChange func(open bool)
}

// Dropdown is a button that opens a menu of actions.
type Dropdown struct {
	*Select
	label string
}

// NewDropdown creates a Dropdown and registers its menu layer on screen.
func NewDropdown(screen Screen, cfg DropdownConfig) *Dropdown {
	items := cfg.Items
	options := make([]listbox.Option, len(items))
	for i, it := range items {
		options[i] = listbox.Option{Value: strconv.Itoa(i), Label: it.Label}
	}

	d := &Dropdown{label: cfg.Label}
	d.Select = NewSelect(screen, SelectConfig{
		ID:           cfg.ID,
		Placeholder:  cfg.Label,
		Options:      options,
		Placement:    cfg.Placement,
		ListHeight:   len(items),
		Flip:         cfg.Flip,
		Clamp:        cfg.Clamp,
		Controlled:   true,
		Disabled:     cfg.Disabled,
		NoSearch:     true,
		KeyMap:       cfg.KeyMap,
		OnOpenChange: cfg.OnOpenChange,
		OnChange: func(value string) {
			i, err := strconv.Atoi(value)
			if err != nil || i < 0 || i >= len(items) {
				return
			}
			if items[i].Action != nil {
				items[i].Action()
			}
		},
	})
	d.trigger = d
	return d
}

// Render draws the button.
func (d *Dropdown) Render(out *tui.RenderBuffer, w int) {
	p := theme.Current().Palette
	label := width.TruncateToWidth(d.label+" ▾", max(w-2, 1))
	line := "[" + label + "]"
	switch {
	case d.machine.Host().Disabled():
		line = p.Disabled.Apply(line)
	case d.machine.State().Open:
		line = p.Accent.Apply(line)
	case d.IsFocused():
		line = p.Focus.Apply(line)
	}
	out.WriteLine(line)
}
