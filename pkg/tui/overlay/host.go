// ABOUTME: Overlay host: open/closed state for one floating surface anchored to a trigger
// ABOUTME: Opening subscribes to dismissal and defers placement to a post-paint callback

package overlay

import (
	"sync"

	"github.com/pledgeboard/pledge-tui/internal/log"
	"github.com/pledgeboard/pledge-tui/pkg/tui/dismiss"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
)

// MeasureFunc reports the rectangle of an element from the last painted
// frame. ok is false when the element is not mounted. For overlay content
// only W and H are read.
type MeasureFunc func() (r geom.Rect, ok bool)

// Scheduler runs fn after the next paint, on the UI event loop.
type Scheduler interface {
	AfterPaint(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// AfterPaint calls f(fn).
func (f SchedulerFunc) AfterPaint(fn func()) { f(fn) }

// Config wires a Host to its trigger, content and surroundings.
type Config struct {
	ID        string
	Placement geom.Placement
	Trigger   MeasureFunc
	Content   MeasureFunc
	Viewport  func() geom.Rect

	// Flip moves the overlay to the opposite side when it overflows.
	Flip bool
	// Clamp keeps the overlay inside the viewport.
	Clamp bool

	// OnOpenChange fires on every Closed<->Open transition.
	OnOpenChange func(open bool)
	// OnDismiss fires before the host closes itself for a dismissal event.
	OnDismiss func(reason dismiss.Reason)
	// OnPosition fires after each successful placement.
	OnPosition func(pos geom.Position)
}

// State is a snapshot of the host. Position is nil until the first
// placement after opening.
type State struct {
	Open     bool
	Position *geom.Position
}

// Host owns the visibility and position of one overlay.
type Host struct {
	cfg   Config
	ctrl  *dismiss.Controller
	sched Scheduler

	mu       sync.Mutex
	open     bool
	disabled bool
	pos      *geom.Position
	token    dismiss.Token
	gen      uint64
	pending  bool
}

// New creates a closed Host.
func New(ctrl *dismiss.Controller, sched Scheduler, cfg Config) *Host {
	return &Host{cfg: cfg, ctrl: ctrl, sched: sched}
}

// ID returns the configured identifier.
func (h *Host) ID() string { return h.cfg.ID }

// SetPlacement changes the requested placement; an open host re-places.
func (h *Host) SetPlacement(p geom.Placement) {
	h.mu.Lock()
	h.cfg.Placement = p
	open := h.open
	h.mu.Unlock()
	if open {
		h.schedule()
	}
}

// Open transitions Closed -> Open. It is a no-op when already open or
// disabled.
func (h *Host) Open() {
	h.mu.Lock()
	if h.open || h.disabled {
		h.mu.Unlock()
		return
	}
	h.open = true
	h.pos = nil
	h.gen++
	h.pending = false
	h.token = h.ctrl.Subscribe(dismiss.Subscription{
		ID:         h.cfg.ID,
		Contains:   h.Contains,
		OnDismiss:  h.dismissed,
		OnViewport: func(dismiss.Event) { h.schedule() },
	})
	h.mu.Unlock()

	if h.cfg.OnOpenChange != nil {
		h.cfg.OnOpenChange(true)
	}
	h.schedule()
}

// Close transitions Open -> Closed. It is a no-op when already closed.
func (h *Host) Close() {
	h.mu.Lock()
	if !h.open {
		h.mu.Unlock()
		return
	}
	// Unsubscribe before anything else so no viewport callback from this
	// opening can fire after the host is closed.
	h.ctrl.Unsubscribe(h.token)
	h.token = 0
	h.open = false
	h.pos = nil
	h.gen++
	h.pending = false
	h.mu.Unlock()

	if h.cfg.OnOpenChange != nil {
		h.cfg.OnOpenChange(false)
	}
}

// Toggle opens a closed host and closes an open one.
func (h *Host) Toggle() {
	if h.IsOpen() {
		h.Close()
		return
	}
	h.Open()
}

// IsOpen reports whether the host is open.
func (h *Host) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// SetDisabled blocks future opens; disabling an open host closes it.
func (h *Host) SetDisabled(disabled bool) {
	h.mu.Lock()
	h.disabled = disabled
	open := h.open
	h.mu.Unlock()
	if disabled && open {
		h.Close()
	}
}

// Disabled reports the disabled flag.
func (h *Host) Disabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disabled
}

// State returns a copy of the current state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := State{Open: h.open}
	if h.pos != nil {
		p := *h.pos
		s.Position = &p
	}
	return s
}

// Position returns the placed position, if any.
func (h *Host) Position() (geom.Position, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == nil {
		return geom.Position{}, false
	}
	return *h.pos, true
}

// Contains reports whether (x, y) falls on the trigger or on the placed
// content. Content that has not been placed yet covers no cells.
func (h *Host) Contains(x, y int) bool {
	if h.cfg.Trigger != nil {
		if r, ok := h.cfg.Trigger(); ok && r.Contains(x, y) {
			return true
		}
	}
	pos, placed := h.Position()
	if !placed || h.cfg.Content == nil {
		return false
	}
	size, ok := h.cfg.Content()
	if !ok {
		return false
	}
	return geom.Rect{X: pos.Left, Y: pos.Top, W: size.W, H: size.H}.Contains(x, y)
}

func (h *Host) dismissed(reason dismiss.Reason) {
	if h.cfg.OnDismiss != nil {
		h.cfg.OnDismiss(reason)
	}
	h.Close()
}

// schedule queues one placement pass. Requests made while one is pending
// coalesce; the pass reads the latest rectangles when it runs.
func (h *Host) schedule() {
	h.mu.Lock()
	if !h.open || h.pending {
		h.mu.Unlock()
		return
	}
	h.pending = true
	gen := h.gen
	h.mu.Unlock()

	h.sched.AfterPaint(func() { h.place(gen) })
}

func (h *Host) place(gen uint64) {
	h.mu.Lock()
	if !h.open || h.gen != gen {
		h.mu.Unlock()
		return
	}
	h.pending = false
	cfg := h.cfg
	h.mu.Unlock()

	trigger, ok := measure(cfg.Trigger)
	if !ok {
		log.Debug("overlay %s: trigger not measurable, keeping last position", cfg.ID)
		return
	}
	content, ok := measure(cfg.Content)
	if !ok {
		log.Debug("overlay %s: content not measurable, keeping last position", cfg.ID)
		return
	}

	var viewport geom.Rect
	if cfg.Viewport != nil {
		viewport = cfg.Viewport()
	}
	placement := cfg.Placement
	if cfg.Flip {
		placement = geom.Flip(trigger, content, placement, viewport)
	}
	pos := geom.ComputePosition(trigger, content, placement, viewport)
	if cfg.Clamp {
		pos = geom.Clamp(pos, content, viewport)
	}

	h.mu.Lock()
	if !h.open || h.gen != gen {
		h.mu.Unlock()
		return
	}
	h.pos = &pos
	h.mu.Unlock()

	if cfg.OnPosition != nil {
		cfg.OnPosition(pos)
	}
}

func measure(fn MeasureFunc) (geom.Rect, bool) {
	if fn == nil {
		return geom.Rect{}, false
	}
	return fn()
}
