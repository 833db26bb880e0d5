// ABOUTME: Dismissal controller: one shared listener set fanned out to open overlays
// ABOUTME: Outside pointer-down and blur dismiss; Escape closes only the topmost layer

package dismiss

import (
	"sync"

	"github.com/pledgeboard/pledge-tui/internal/eventbus"
)

// Kind enumerates the events the controller routes.
type Kind int

const (
	PointerDown Kind = iota
	Escape
	Blur
	Resize
	Scroll
)

// Event is a screen-level input the controller reacts to.
// X and Y are set for PointerDown; W and H for Resize.
type Event struct {
	Kind Kind
	X, Y int
	W, H int
}

// Reason tells an overlay why it is being dismissed.
type Reason int

const (
	ReasonOutside Reason = iota
	ReasonEscape
	ReasonBlur
)

func (r Reason) String() string {
	switch r {
	case ReasonEscape:
		return "escape"
	case ReasonBlur:
		return "blur"
	default:
		return "outside"
	}
}

// Subscription describes one open overlay. Contains reports whether a cell
// belongs to the overlay's trigger or content; the overlay owns that region.
type Subscription struct {
	ID         string
	Contains   func(x, y int) bool
	OnDismiss  func(Reason)
	OnViewport func(Event)
}

// Token identifies a subscription. The zero Token is never issued.
type Token uint64

// Listener is the screen-level listener set shared by all overlays. The
// controller installs it when the first overlay subscribes and uninstalls
// it when the last one leaves.
type Listener interface {
	Install()
	Uninstall()
}

type entry struct {
	token   Token
	sub     Subscription
	unwatch func()
}

// Controller routes dismissal events to subscribed overlays in
// registration order. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	entries  []entry
	next     Token
	viewport *eventbus.Bus[Event]

	// lmu serializes listener toggles; installed mirrors the listener.
	lmu       sync.Mutex
	listener  Listener
	installed bool
}

// New returns a Controller. listener may be nil when no screen-level
// listener needs toggling (tests, or a backend that always reports events).
func New(listener Listener) *Controller {
	return &Controller{
		listener: listener,
		viewport: eventbus.New[Event](),
	}
}

// Subscribe registers an overlay and returns its token.
func (c *Controller) Subscribe(sub Subscription) Token {
	var unwatch func()
	if sub.OnViewport != nil {
		unwatch = c.viewport.Subscribe(sub.OnViewport)
	}

	c.mu.Lock()
	c.next++
	tok := c.next
	c.entries = append(c.entries, entry{token: tok, sub: sub, unwatch: unwatch})
	first := len(c.entries) == 1
	c.mu.Unlock()

	if first {
		c.syncListener()
	}
	return tok
}

// Unsubscribe removes the subscription. Unknown or repeated tokens are ignored.
func (c *Controller) Unsubscribe(tok Token) {
	c.mu.Lock()
	idx := -1
	for i, e := range c.entries {
		if e.token == tok {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	e := c.entries[idx]
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	last := len(c.entries) == 0
	c.mu.Unlock()

	if e.unwatch != nil {
		e.unwatch()
	}
	if last {
		c.syncListener()
	}
}

// syncListener installs or uninstalls the listener to match the current
// subscriber count. Racing transitions settle on the final count.
func (c *Controller) syncListener() {
	if c.listener == nil {
		return
	}
	c.lmu.Lock()
	defer c.lmu.Unlock()
	want := c.Len() > 0
	if want == c.installed {
		return
	}
	c.installed = want
	if want {
		c.listener.Install()
	} else {
		c.listener.Uninstall()
	}
}

// Len returns the number of active subscriptions.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Active returns subscription IDs in registration order, oldest first.
func (c *Controller) Active() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.sub.ID
	}
	return ids
}

// Dispatch routes ev and reports whether any overlay was dismissed.
// Callbacks run without the lock held, so they may unsubscribe.
func (c *Controller) Dispatch(ev Event) bool {
	switch ev.Kind {
	case Resize, Scroll:
		c.viewport.Publish(ev)
		return false
	case Escape:
		return c.dismissTop()
	case Blur:
		return c.dismissAll(ReasonBlur, nil)
	case PointerDown:
		return c.dismissAll(ReasonOutside, func(s Subscription) bool {
			return s.Contains == nil || !s.Contains(ev.X, ev.Y)
		})
	}
	return false
}

func (c *Controller) dismissTop() bool {
	c.mu.Lock()
	if len(c.entries) == 0 {
		c.mu.Unlock()
		return false
	}
	top := c.entries[len(c.entries)-1]
	c.mu.Unlock()

	if top.sub.OnDismiss != nil {
		top.sub.OnDismiss(ReasonEscape)
	}
	return true
}

// dismissAll walks a snapshot topmost first. An entry already removed by an
// earlier callback (a parent closing its child) is skipped.
func (c *Controller) dismissAll(reason Reason, match func(Subscription) bool) bool {
	snapshot := c.snapshot()
	dismissed := false
	for i := len(snapshot) - 1; i >= 0; i-- {
		e := snapshot[i]
		if !c.has(e.token) {
			continue
		}
		if match != nil && !match(e.sub) {
			continue
		}
		if e.sub.OnDismiss != nil {
			e.sub.OnDismiss(reason)
		}
		dismissed = true
	}
	return dismissed
}

func (c *Controller) snapshot() []entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Controller) has(tok Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.token == tok {
			return true
		}
	}
	return false
}
