// ABOUTME: Machine binds the list reducer to an overlay host and host-app callbacks
// ABOUTME: All mutations go through dispatch; host dismissals fold back into State

package listbox

import (
	"sync"

	"github.com/pledgeboard/pledge-tui/pkg/tui/dismiss"
	"github.com/pledgeboard/pledge-tui/pkg/tui/overlay"
)

// Config holds the host-application side of a list box.
type Config struct {
	Options    []Option
	Filter     Filter
	ViewHeight int
	NoSearch   bool
	Controlled bool
	// Value is the initial committed value; ignored unless it is an option.
	// An empty Value counts only when HasValue is set.
	Value    string
	HasValue bool

	// OnChange fires exactly once per successful commit.
	OnChange func(value string)
	// OnOpenChange fires on every Closed<->Open transition.
	OnOpenChange func(open bool)
}

// Machine is a searchable, keyboard-navigable list layered on an overlay host.
type Machine struct {
	mu    sync.Mutex
	env   Env
	state State
	cfg   Config
	host  *overlay.Host
}

// NewMachine creates a closed Machine and the overlay host it drives.
// hostCfg.OnOpenChange is wrapped; set Config.OnOpenChange instead.
func NewMachine(ctrl *dismiss.Controller, sched overlay.Scheduler, hostCfg overlay.Config, cfg Config) *Machine {
	m := &Machine{
		env: Env{
			Options:    cfg.Options,
			Filter:     cfg.Filter,
			ViewHeight: cfg.ViewHeight,
			NoSearch:   cfg.NoSearch,
			Controlled: cfg.Controlled,
		},
		state: Initial(),
		cfg:   cfg,
	}
	if cfg.HasValue || cfg.Value != "" {
		m.state, _ = Reduce(m.env, m.state, SetValueAction{Value: cfg.Value})
	}
	hostCfg.OnOpenChange = m.hostChanged
	m.host = overlay.New(ctrl, sched, hostCfg)
	return m
}

// Host returns the underlying overlay host.
func (m *Machine) Host() *overlay.Host { return m.host }

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Options returns the full option universe.
func (m *Machine) Options() []Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.env.Options
}

// Visible returns the filtered options in display order.
func (m *Machine) Visible() []Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.env.Visible(m.state)
	out := make([]Option, len(idx))
	for i, j := range idx {
		out[i] = m.env.Options[j]
	}
	return out
}

// Value returns the committed value, if any.
func (m *Machine) Value() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Committed, m.state.HasCommitted
}

// Label returns the label of the committed option, or "".
func (m *Machine) Label() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.HasCommitted {
		return ""
	}
	for _, o := range m.env.Options {
		if o.Value == m.state.Committed {
			return o.Label
		}
	}
	return ""
}

// Open opens the list. Disabled hosts stay closed.
func (m *Machine) Open() {
	if m.host.Disabled() {
		return
	}
	m.dispatch(OpenAction{})
}

// Toggle opens a closed list and escapes an open one.
func (m *Machine) Toggle() {
	if m.State().Open {
		m.Escape()
		return
	}
	m.Open()
}

// Type appends r to the search term.
func (m *Machine) Type(r rune) { m.dispatch(TypeAction{Char: r}) }

// Backspace removes the last rune of the search term.
func (m *Machine) Backspace() { m.dispatch(BackspaceAction{}) }

// Navigate moves the highlight.
func (m *Machine) Navigate(d Direction) { m.dispatch(NavigateAction{Dir: d}) }

// Commit commits the highlighted option; without a highlight it does nothing.
func (m *Machine) Commit() { m.dispatch(CommitAction{}) }

// Escape closes the list and keeps the committed value.
func (m *Machine) Escape() { m.dispatch(EscapeAction{}) }

// Select commits the visible option with the given value.
func (m *Machine) Select(value string) { m.dispatch(SelectAction{Value: value}) }

// SetValue sets the committed value; values outside the universe are ignored.
func (m *Machine) SetValue(value string) { m.dispatch(SetValueAction{Value: value}) }

// ClearValue removes the committed value.
func (m *Machine) ClearValue() { m.dispatch(SetValueAction{Clear: true}) }

// SetOptions replaces the option universe and re-derives the state.
func (m *Machine) SetOptions(options []Option) {
	m.mu.Lock()
	var ra RetainAction
	visible := m.env.Visible(m.state)
	if h := m.state.Highlighted; h >= 0 && h < len(visible) {
		ra = RetainAction{HighlightedValue: m.env.Options[visible[h]].Value, HadHighlight: true}
	}
	m.env.Options = options
	m.mu.Unlock()

	m.dispatch(ra)
}

// dispatch is the single update path: reduce, then reconcile the host and
// fire callbacks outside the lock.
func (m *Machine) dispatch(a Action) {
	m.mu.Lock()
	prev := m.state
	next, eff := Reduce(m.env, prev, a)
	m.state = next
	m.mu.Unlock()

	switch {
	case next.Open && !prev.Open:
		m.host.Open()
	case !next.Open && prev.Open:
		m.host.Close()
	}
	if eff.Commit && m.cfg.OnChange != nil {
		m.cfg.OnChange(eff.Value)
	}
}

// hostChanged folds host transitions we did not initiate (dismissals)
// back into the list state.
func (m *Machine) hostChanged(open bool) {
	m.mu.Lock()
	switch {
	case open && !m.state.Open:
		m.state, _ = Reduce(m.env, m.state, OpenAction{})
	case !open && m.state.Open:
		m.state, _ = Reduce(m.env, m.state, EscapeAction{})
	}
	m.mu.Unlock()

	if m.cfg.OnOpenChange != nil {
		m.cfg.OnOpenChange(open)
	}
}
