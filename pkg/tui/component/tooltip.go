// ABOUTME: Tooltip attaches a floating hint to an inline anchor
// ABOUTME: Focus or a click shows it; blur, Escape or an outside press hide it

package component

import (
	"sync"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
	"github.com/pledgeboard/pledge-tui/pkg/tui/overlay"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

const defaultTooltipWidth = 40

// TooltipConfig configures a Tooltip.
type TooltipConfig struct {
	ID     string
	Anchor string
	// Content is plain text, or markdown when Markdown is set.
	Content  string
	Markdown bool
	Style    MarkdownStyle
	// Placement defaults to top-center when left zero.
	Placement *geom.Placement
	Width     int
	Flip      bool
	Clamp     bool

	OnOpenChange func(open bool)
}

// Tooltip is an inline anchor with a hint overlay.
type Tooltip struct {
	screen Screen
	cfg    TooltipConfig
	host   *overlay.Host

	mu      sync.Mutex
	focused bool
	// focusing is set between gaining focus and the next paint, so the
	// press that focused the anchor does not toggle the tooltip shut.
	focusing bool
}

// tooltipBody renders its child only while the host is open.
type tooltipBody struct {
	host  *overlay.Host
	child tui.Component
}

func (b *tooltipBody) Render(out *tui.RenderBuffer, w int) {
	if b.host.IsOpen() {
		b.child.Render(out, w)
	}
}

func (b *tooltipBody) Invalidate() { b.child.Invalidate() }

// NewTooltip creates a Tooltip and registers its layer on screen.
func NewTooltip(screen Screen, cfg TooltipConfig) *Tooltip {
	placement := geom.Placement{Side: geom.Top, Align: geom.Center}
	if cfg.Placement != nil {
		placement = *cfg.Placement
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultTooltipWidth
	}

	t := &Tooltip{screen: screen, cfg: cfg}
	t.host = overlay.New(screen.Controller(), screen, overlay.Config{
		ID:        cfg.ID,
		Placement: placement,
		Trigger:   func() (geom.Rect, bool) { return screen.Bounds(t) },
		Content:   func() (geom.Rect, bool) { return screen.LayerSize(cfg.ID) },
		Viewport:  screen.Viewport,
		Flip:      cfg.Flip,
		Clamp:     cfg.Clamp,
		OnOpenChange: func(open bool) {
			screen.RequestRender()
			if cfg.OnOpenChange != nil {
				cfg.OnOpenChange(open)
			}
		},
		OnPosition: func(geom.Position) { screen.RequestRender() },
	})

	var body tui.Component
	if cfg.Markdown {
		body = NewMarkdown(cfg.Content, cfg.Style)
	} else {
		body = NewText(cfg.Content)
	}
	screen.AddLayer(tui.Layer{
		ID:        cfg.ID,
		Component: &tooltipBody{host: t.host, child: NewFrame(body)},
		Width:     cfg.Width,
		Position:  t.host.Position,
	})
	return t
}

// Host exposes the overlay host.
func (t *Tooltip) Host() *overlay.Host { return t.host }

// Show opens the tooltip.
func (t *Tooltip) Show() { t.host.Open() }

// Hide closes the tooltip.
func (t *Tooltip) Hide() { t.host.Close() }

// Toggle flips the tooltip.
func (t *Tooltip) Toggle() { t.host.Toggle() }

// Detach removes the tooltip layer.
func (t *Tooltip) Detach() {
	t.Hide()
	t.screen.RemoveLayer(t.cfg.ID)
}

// SetFocused shows the tooltip on focus and hides it on blur.
func (t *Tooltip) SetFocused(focused bool) {
	t.mu.Lock()
	t.focused = focused
	t.focusing = focused
	t.mu.Unlock()
	if focused {
		t.Show()
		t.screen.AfterPaint(func() {
			t.mu.Lock()
			t.focusing = false
			t.mu.Unlock()
		})
	} else {
		t.Hide()
	}
}

// IsFocused implements tui.Focusable.
func (t *Tooltip) IsFocused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focused
}

// Render draws the anchor.
func (t *Tooltip) Render(out *tui.RenderBuffer, w int) {
	p := theme.Current().Palette
	anchor := width.TruncateToWidth(t.cfg.Anchor, w)
	switch {
	case t.IsFocused():
		anchor = p.Focus.Apply(anchor)
	default:
		anchor = p.Match.Apply(anchor)
	}
	out.WriteLine(anchor)
}

// Invalidate is a no-op.
func (t *Tooltip) Invalidate() {}

// HandleKey reopens a dismissed tooltip on Enter.
func (t *Tooltip) HandleKey(k key.Key) bool {
	if k.Type != key.KeyEnter {
		return false
	}
	t.Toggle()
	return true
}

// HandleMouse toggles the tooltip on a press.
func (t *Tooltip) HandleMouse(m key.Mouse) bool {
	if !m.IsPress() || m.Button != key.MouseLeft {
		return false
	}
	t.mu.Lock()
	focusing := t.focusing
	t.focusing = false
	t.mu.Unlock()
	if !focusing {
		t.Toggle()
	}
	return true
}
