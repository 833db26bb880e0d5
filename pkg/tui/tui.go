// ABOUTME: TUI engine: single event loop, differential rendering, focus, layers and input routing
// ABOUTME: Runs post-paint callbacks after each frame so overlays can measure what was drawn

package tui

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/pledgeboard/pledge-tui/internal/log"
	"github.com/pledgeboard/pledge-tui/pkg/tui/dismiss"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
	"github.com/pledgeboard/pledge-tui/pkg/tui/internal/pool"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// Writer is the minimal interface for terminal output.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// Option configures a TUI.
type Option func(*TUI)

// WithListener sets the screen-level listener toggled by the dismissal
// controller while any overlay is open.
func WithListener(l dismiss.Listener) Option {
	return func(t *TUI) { t.listener = l }
}

// layout is the measured geometry of the last painted frame.
type layout struct {
	spans    []Span
	layers   []paintedLayer
	scroll   int
	contentH int
}

// TUI is the main rendering engine. Input handling, rendering and
// post-paint callbacks all run on one goroutine: the loop started by
// Start, or the caller's goroutine when driven directly in tests.
type TUI struct {
	container *Container
	writer    Writer
	ctrl      *dismiss.Controller
	listener  dismiss.Listener

	mu            sync.Mutex
	width         int
	height        int
	scroll        int
	previousLines []string
	fullRedraw    bool
	layers        []Layer
	focused       Component
	afterPaint    []func()
	last          layout
	onKey         func(key.Key) bool

	renderCh chan struct{}
	postCh   chan func()
	stopCh   chan struct{}
	stopOnce sync.Once
	running  bool
}

// New creates a new TUI engine writing to w with the given dimensions.
func New(w Writer, termWidth, termHeight int, opts ...Option) *TUI {
	t := &TUI{
		container:  NewContainer(),
		writer:     w,
		width:      termWidth,
		height:     termHeight,
		fullRedraw: true,
		renderCh:   make(chan struct{}, 1),
		postCh:     make(chan func(), 64),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.ctrl = dismiss.New(t.listener)
	return t
}

// Container returns the root container for adding components.
func (t *TUI) Container() *Container {
	return t.container
}

// Controller returns the dismissal controller shared by every overlay on
// this screen.
func (t *TUI) Controller() *dismiss.Controller {
	return t.ctrl
}

// Size returns the terminal dimensions.
func (t *TUI) Size() (w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Viewport returns the visible screen rectangle.
func (t *TUI) Viewport() geom.Rect {
	w, h := t.Size()
	return geom.Rect{W: w, H: h}
}

// SetSize updates the terminal dimensions, notifies open overlays and
// triggers a full redraw.
func (t *TUI) SetSize(w, h int) {
	t.mu.Lock()
	t.width = w
	t.height = h
	t.fullRedraw = true
	t.mu.Unlock()
	log.Debug("tui: resize %dx%d", w, h)

	t.container.Invalidate()
	t.ctrl.Dispatch(dismiss.Event{Kind: dismiss.Resize, W: w, H: h})
	t.RequestRender()
}

// ScrollBy moves the viewport over the main content by delta rows and
// reports whether the offset changed.
func (t *TUI) ScrollBy(delta int) bool {
	t.mu.Lock()
	limit := max(0, t.last.contentH-t.height)
	next := min(max(0, t.scroll+delta), limit)
	changed := next != t.scroll
	t.scroll = next
	t.mu.Unlock()

	if changed {
		t.ctrl.Dispatch(dismiss.Event{Kind: dismiss.Scroll})
		t.RequestRender()
	}
	return changed
}

// ScrollOffset returns the first content row shown on screen.
func (t *TUI) ScrollOffset() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scroll
}

// AddLayer adds l on top of existing layers, replacing any layer with the
// same ID in place.
func (t *TUI) AddLayer(l Layer) {
	t.mu.Lock()
	i := slices.IndexFunc(t.layers, func(x Layer) bool { return x.ID == l.ID })
	if i >= 0 {
		t.layers[i] = l
	} else {
		t.layers = append(t.layers, l)
	}
	t.mu.Unlock()
	t.RequestRender()
}

// RemoveLayer removes the layer with the given ID.
func (t *TUI) RemoveLayer(id string) {
	t.mu.Lock()
	t.layers = slices.DeleteFunc(t.layers, func(x Layer) bool { return x.ID == id })
	t.mu.Unlock()
	t.RequestRender()
}

// OnKey sets the handler for keys the focused component did not consume.
func (t *TUI) OnKey(fn func(key.Key) bool) {
	t.mu.Lock()
	t.onKey = fn
	t.mu.Unlock()
}

// SetFocus moves keyboard focus to c. A nil c clears focus.
func (t *TUI) SetFocus(c Component) {
	t.mu.Lock()
	prev := t.focused
	t.focused = c
	t.mu.Unlock()

	if prev == c {
		return
	}
	if f, ok := prev.(Focusable); ok {
		f.SetFocused(false)
	}
	if f, ok := c.(Focusable); ok {
		f.SetFocused(true)
	}
	t.RequestRender()
}

// Focused returns the component holding keyboard focus.
func (t *TUI) Focused() Component {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focused
}

// FocusNext moves focus to the next focusable component in screen order.
func (t *TUI) FocusNext() { t.cycleFocus(1) }

// FocusPrev moves focus to the previous focusable component.
func (t *TUI) FocusPrev() { t.cycleFocus(-1) }

func (t *TUI) cycleFocus(dir int) {
	t.mu.Lock()
	spans := slices.Clone(t.last.spans)
	cur := t.focused
	t.mu.Unlock()

	slices.SortStableFunc(spans, func(a, b Span) int { return a.Start - b.Start })
	var order []Component
	for _, s := range spans {
		if _, ok := s.Component.(Focusable); ok && !slices.Contains(order, s.Component) {
			order = append(order, s.Component)
		}
	}
	if len(order) == 0 {
		return
	}
	i := slices.Index(order, cur)
	switch {
	case i < 0 && dir < 0:
		i = len(order) - 1
	case i < 0:
		i = 0
	default:
		i = (i + dir + len(order)) % len(order)
	}
	t.SetFocus(order[i])
}

// AfterPaint queues fn to run once the next frame has been written. It
// also requests that frame.
func (t *TUI) AfterPaint(fn func()) {
	t.mu.Lock()
	t.afterPaint = append(t.afterPaint, fn)
	t.mu.Unlock()
	t.RequestRender()
}

// Bounds returns the screen rectangle c occupied in the last frame.
func (t *TUI) Bounds(c Component) (geom.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.last.spans {
		if s.Component == c && s.End > s.Start {
			return geom.Rect{X: 0, Y: s.Start - t.last.scroll, W: max(s.Width, 1), H: s.End - s.Start}, true
		}
	}
	return geom.Rect{}, false
}

// LayerSize returns the size the layer rendered at in the last frame,
// whether or not it was painted. Only W and H are set.
func (t *TUI) LayerSize(id string) (geom.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, pl := range t.last.layers {
		if pl.layer.ID == id && pl.size.H > 0 {
			return pl.size, true
		}
	}
	return geom.Rect{}, false
}

// LayerRect returns the cells the layer covered in the last frame.
func (t *TUI) LayerRect(id string) (geom.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, pl := range t.last.layers {
		if pl.layer.ID == id && pl.painted {
			return pl.rect, true
		}
	}
	return geom.Rect{}, false
}

// HandleKey routes one input event. Pointer presses reach the dismissal
// controller before any component; Escape goes to the controller first
// and only falls through when no overlay is open.
func (t *TUI) HandleKey(k key.Key) {
	switch k.Type {
	case key.KeyMouse:
		t.handleMouse(k.Mouse)
		return
	case key.KeyFocusOut:
		if t.ctrl.Dispatch(dismiss.Event{Kind: dismiss.Blur}) {
			t.RequestRender()
		}
		return
	case key.KeyFocusIn:
		return
	case key.KeyEscape:
		if t.ctrl.Dispatch(dismiss.Event{Kind: dismiss.Escape}) {
			t.RequestRender()
			return
		}
	}

	if h, ok := t.Focused().(KeyHandler); ok && h.HandleKey(k) {
		t.RequestRender()
		return
	}

	t.mu.Lock()
	onKey := t.onKey
	page := max(1, t.height/2)
	t.mu.Unlock()
	if onKey != nil && onKey(k) {
		t.RequestRender()
		return
	}

	switch k.Type {
	case key.KeyPageUp:
		t.ScrollBy(-page)
	case key.KeyPageDown:
		t.ScrollBy(page)
	}
}

func (t *TUI) handleMouse(m key.Mouse) {
	if m.Button == key.MouseWheelUp || m.Button == key.MouseWheelDown {
		if t.mouseToLayer(m) {
			return
		}
		if m.Button == key.MouseWheelUp {
			t.ScrollBy(-1)
		} else {
			t.ScrollBy(1)
		}
		return
	}
	if !m.IsPress() {
		return
	}

	if t.ctrl.Dispatch(dismiss.Event{Kind: dismiss.PointerDown, X: m.X, Y: m.Y}) {
		t.RequestRender()
	}
	if t.mouseToLayer(m) {
		return
	}

	t.mu.Lock()
	spans := t.last.spans
	scroll := t.last.scroll
	t.mu.Unlock()

	row := m.Y + scroll
	for _, s := range spans {
		if row < s.Start || row >= s.End || m.X >= max(s.Width, 1) {
			continue
		}
		if _, ok := s.Component.(Focusable); ok {
			t.SetFocus(s.Component)
		}
		if h, ok := s.Component.(MouseHandler); ok {
			local := m
			local.Y = row - s.Start
			if h.HandleMouse(local) {
				t.RequestRender()
				return
			}
		}
	}
}

// mouseToLayer hands m to the topmost painted layer under the pointer.
// Layers whose position went away since the last frame are skipped.
func (t *TUI) mouseToLayer(m key.Mouse) bool {
	t.mu.Lock()
	layers := t.last.layers
	t.mu.Unlock()

	for i := len(layers) - 1; i >= 0; i-- {
		pl := layers[i]
		if !pl.painted || !pl.rect.Contains(m.X, m.Y) {
			continue
		}
		if pos, ok := pl.layer.Position(); !ok || pos.Top != pl.rect.Y || pos.Left != pl.rect.X {
			continue
		}
		if h, ok := pl.layer.Component.(MouseHandler); ok {
			local := m
			local.X -= pl.rect.X
			local.Y -= pl.rect.Y
			h.HandleMouse(local)
		}
		t.RequestRender()
		return true
	}
	return false
}

// RequestRender signals that a render is needed. Multiple calls coalesce
// into a single render via a buffered channel of size 1.
func (t *TUI) RequestRender() {
	select {
	case t.renderCh <- struct{}{}:
	default: // Already pending; coalesced
	}
}

// Post runs fn on the event loop. It drops fn once the loop has stopped.
func (t *TUI) Post(fn func()) {
	select {
	case t.postCh <- fn:
	case <-t.stopCh:
	}
}

// Start begins the event loop in a goroutine. Call Stop to terminate.
func (t *TUI) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.mu.Unlock()

	go t.loop()
}

// Stop terminates the event loop. Safe to call multiple times.
func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		close(t.stopCh)
	})
}

// RenderOnce performs a single synchronous render, including its
// post-paint callbacks. Useful for testing.
func (t *TUI) RenderOnce() {
	t.render()
}

// maxFlushFrames bounds Flush so a component that requests a render on
// every frame cannot spin it forever.
const maxFlushFrames = 4

// Flush renders synchronously until no further render is requested,
// including the frames post-paint callbacks ask for. It is how a host
// without the event loop drives the engine.
func (t *TUI) Flush() {
	select {
	case <-t.renderCh:
	default:
	}
	t.render()
	for range maxFlushFrames - 1 {
		select {
		case <-t.renderCh:
			t.render()
		default:
			return
		}
	}
}

// Frame returns a copy of the last painted screen rows.
func (t *TUI) Frame() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.previousLines)
}

func (t *TUI) loop() {
	for {
		select {
		case <-t.stopCh:
			return
		case fn := <-t.postCh:
			fn()
		case <-t.renderCh:
			t.render()
		}
	}
}

func (t *TUI) render() {
	t.mu.Lock()
	w := t.width
	h := t.height
	scroll := t.scroll
	prevLines := t.previousLines
	full := t.fullRedraw
	t.fullRedraw = false
	layers := slices.Clone(t.layers)
	t.mu.Unlock()

	if w <= 0 || h <= 0 {
		return
	}

	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	t.container.Render(buf, w)

	contentH := buf.Len()
	scroll = min(max(0, scroll), max(0, contentH-h))
	screen := make([]string, h)
	if scroll < contentH {
		copy(screen, buf.Lines[scroll:min(contentH, scroll+h)])
	}

	painted := compositeLayers(screen, layers, w, h)
	cursorRow, cursorCol := extractCursorPosition(screen)

	b := pool.Builder()
	defer pool.ReleaseBuilder(b)
	var numBuf [20]byte
	diffRender(b, numBuf[:], prevLines, screen, full)
	if cursorRow >= 0 && cursorCol >= 0 {
		moveTo(b, numBuf[:], cursorRow, cursorCol)
		b.WriteString("\x1b[?25h") // Show cursor
	} else {
		b.WriteString("\x1b[?25l") // Hide cursor
	}

	// CSI 2026 synchronized output
	frame := pool.Frame()
	defer pool.ReleaseFrame(frame)
	frame.WriteString("\x1b[?2026h")
	frame.WriteString(b.String())
	frame.WriteString("\x1b[?2026l")
	_, _ = t.writer.Write(frame.Bytes())

	t.mu.Lock()
	t.previousLines = screen
	t.scroll = scroll
	t.last = layout{
		spans:    slices.Clone(buf.Spans()),
		layers:   painted,
		scroll:   scroll,
		contentH: contentH,
	}
	pending := t.afterPaint
	t.afterPaint = nil
	t.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// compositeLayers renders every layer, paints the positioned ones onto
// screen in order and returns their geometry.
func compositeLayers(screen []string, layers []Layer, w, h int) []paintedLayer {
	out := make([]paintedLayer, 0, len(layers))
	for _, l := range layers {
		lines, size := renderLayer(l, w)
		pl := paintedLayer{layer: l, size: size}
		if l.Position != nil && size.H > 0 {
			if pos, ok := l.Position(); ok {
				pl.rect = geom.Rect{X: pos.Left, Y: pos.Top, W: size.W, H: size.H}
				pl.painted = true
				for i, line := range lines {
					row := pos.Top + i
					if row < 0 || row >= h {
						continue
					}
					screen[row] = splice(screen[row], line, pos.Left, w)
				}
			}
		}
		out = append(out, pl)
	}
	return out
}

// extractCursorPosition finds the CursorMarker in lines, removes it,
// and returns (row, col). Returns (-1, -1) if not found.
func extractCursorPosition(lines []string) (row, col int) {
	for i, line := range lines {
		idx := strings.Index(line, CursorMarker)
		if idx >= 0 {
			before := line[:idx]
			after := line[idx+len(CursorMarker):]
			lines[i] = before + after
			return i, width.VisibleWidth(before)
		}
	}
	return -1, -1
}

// diffRender rewrites the rows of curr that differ from prev. A full
// redraw, or a height change, clears the screen first.
func diffRender(b *strings.Builder, numBuf []byte, prev, curr []string, full bool) {
	if full || len(prev) != len(curr) {
		b.WriteString("\x1b[2J")
		prev = nil
	}
	for i, line := range curr {
		if i < len(prev) && prev[i] == line {
			continue
		}
		moveTo(b, numBuf, i, 0)
		b.WriteString("\x1b[2K")
		b.WriteString(line)
	}
}

// moveTo emits an absolute cursor move to the zero-based row and col.
func moveTo(b *strings.Builder, numBuf []byte, row, col int) {
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(numBuf[:0], int64(row+1), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(numBuf[:0], int64(col+1), 10))
	b.WriteByte('H')
}
