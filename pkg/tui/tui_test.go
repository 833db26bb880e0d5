// ABOUTME: Tests for the TUI engine: differential rendering, layers, measurement, input routing
// ABOUTME: Uses in-memory writer to capture output for assertions

package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pledgeboard/pledge-tui/pkg/tui/dismiss"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

type mockComponent struct {
	lines   []string
	dirty   bool
	focused bool
	keys    []key.Key
	clicks  []key.Mouse
}

func (m *mockComponent) Render(out *RenderBuffer, width int) {
	out.WriteLines(m.lines)
}

func (m *mockComponent) Invalidate() {
	m.dirty = true
}

func (m *mockComponent) SetFocused(f bool) { m.focused = f }
func (m *mockComponent) IsFocused() bool   { return m.focused }

func (m *mockComponent) HandleKey(k key.Key) bool {
	m.keys = append(m.keys, k)
	return k.Type == key.KeyRune
}

func (m *mockComponent) HandleMouse(ms key.Mouse) bool {
	m.clicks = append(m.clicks, ms)
	return true
}

type countingListener struct{ installs, uninstalls int }

func (l *countingListener) Install()   { l.installs++ }
func (l *countingListener) Uninstall() { l.uninstalls++ }

func press(x, y int) key.Key {
	return key.Key{Type: key.KeyMouse, Mouse: key.Mouse{Button: key.MouseLeft, X: x, Y: y}}
}

func TestRenderBuffer_Pool(t *testing.T) {
	t.Parallel()

	buf := AcquireBuffer()
	buf.WriteLine("line1")
	buf.WriteLine("line2")
	buf.Mark(nil, 0)

	if buf.Len() != 2 {
		t.Errorf("Len() = %d, want 2", buf.Len())
	}

	ReleaseBuffer(buf)

	// Re-acquire should give a clean buffer
	buf2 := AcquireBuffer()
	if buf2.Len() != 0 || len(buf2.Spans()) != 0 {
		t.Errorf("re-acquired buffer Len() = %d spans = %d, want 0", buf2.Len(), len(buf2.Spans()))
	}
	ReleaseBuffer(buf2)
}

func TestContainer_AddRemove(t *testing.T) {
	t.Parallel()

	c := NewContainer()
	comp1 := &mockComponent{lines: []string{"a"}}
	comp2 := &mockComponent{lines: []string{"b"}}

	c.Add(comp1, comp2)

	if len(c.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(c.Children()))
	}

	if !c.Remove(comp1) {
		t.Error("Remove returned false for existing component")
	}

	if kids := c.Children(); len(kids) != 1 || kids[0] != comp2 {
		t.Fatalf("children after remove = %v; want [comp2]", kids)
	}
	if c.Remove(comp1) {
		t.Error("Remove returned true for a component already removed")
	}
}

func TestContainer_RenderMarksSpans(t *testing.T) {
	t.Parallel()

	inner := NewContainer()
	deep := &mockComponent{lines: []string{"deep", "deeper"}}
	inner.Add(deep)

	c := NewContainer()
	head := &mockComponent{lines: []string{"hello"}}
	c.Add(head)
	c.Add(inner)

	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	c.Render(buf, 80)

	if buf.Len() != 3 {
		t.Fatalf("expected 3 lines, got %d", buf.Len())
	}
	spans := buf.Spans()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if spans[0].Component != head || spans[0].Start != 0 || spans[0].End != 1 || spans[0].Width != 5 {
		t.Errorf("head span = %+v", spans[0])
	}
	// Inner children are marked before their container.
	if spans[1].Component != deep || spans[1].Start != 1 || spans[1].End != 3 || spans[1].Width != 6 {
		t.Errorf("deep span = %+v", spans[1])
	}
	if spans[2].Component != inner || spans[2].Start != 1 || spans[2].End != 3 {
		t.Errorf("inner span = %+v", spans[2])
	}
}

func TestTUI_RenderOnce(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 80, 24)
	ui.Container().Add(&mockComponent{lines: []string{"test line"}})

	ui.RenderOnce()

	result := out.String()
	if !strings.Contains(result, "test line") {
		t.Errorf("expected output to contain 'test line', got %q", result)
	}
	if !strings.HasPrefix(result, "\x1b[?2026h") || !strings.HasSuffix(result, "\x1b[?2026l") {
		t.Error("frame not wrapped in synchronized output")
	}
}

func TestTUI_DifferentialRender(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 80, 24)

	comp := &mockComponent{lines: []string{"first", "second"}}
	ui.Container().Add(comp)
	ui.RenderOnce()

	out.Reset()
	ui.RenderOnce()
	if strings.Contains(out.String(), "first") {
		t.Errorf("unchanged frame rewrote content: %q", out.String())
	}

	comp.lines = []string{"first", "changed"}
	out.Reset()
	ui.RenderOnce()
	got := out.String()
	if strings.Contains(got, "first") || !strings.Contains(got, "\x1b[2;1H\x1b[2Kchanged") {
		t.Errorf("expected only row 2 rewritten, got %q", got)
	}
}

func TestTUI_CursorPosition(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 80, 24)

	comp := &mockComponent{lines: []string{"abc" + CursorMarker + "def"}}
	ui.Container().Add(comp)

	ui.RenderOnce()

	result := out.String()
	// Cursor should be positioned at column 4 (after "abc")
	if !strings.Contains(result, "\x1b[1;4H") {
		t.Errorf("expected cursor positioning at row 1, col 4; got %q", result)
	}
	// Cursor should be shown
	if !strings.Contains(result, "\x1b[?25h") {
		t.Error("expected cursor to be shown")
	}
}

func TestExtractCursorPosition(t *testing.T) {
	t.Parallel()

	lines := []string{"hello" + CursorMarker + "world"}
	row, col := extractCursorPosition(lines)

	if row != 0 || col != 5 {
		t.Errorf("cursor at (%d, %d), want (0, 5)", row, col)
	}
	if lines[0] != "helloworld" {
		t.Errorf("marker not stripped: %q", lines[0])
	}
}

func TestExtractCursorPosition_NotFound(t *testing.T) {
	t.Parallel()

	lines := []string{"no cursor here"}
	row, col := extractCursorPosition(lines)

	if row != -1 || col != -1 {
		t.Errorf("expected (-1, -1), got (%d, %d)", row, col)
	}
}

func TestTUI_BoundsAndScroll(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 40, 3)
	top := &mockComponent{lines: []string{"a", "b"}}
	field := &mockComponent{lines: []string{"field!"}}
	tail := &mockComponent{lines: []string{"x", "y", "z"}}
	ui.Container().Add(top)
	ui.Container().Add(field)
	ui.Container().Add(tail)

	if _, ok := ui.Bounds(field); ok {
		t.Fatal("bounds available before first paint")
	}
	ui.RenderOnce()

	r, ok := ui.Bounds(field)
	if !ok || r != (geom.Rect{X: 0, Y: 2, W: 6, H: 1}) {
		t.Fatalf("Bounds = %+v, %v; want {0 2 6 1}", r, ok)
	}

	var events []dismiss.Event
	tok := ui.Controller().Subscribe(dismiss.Subscription{
		ID:         "watch",
		OnViewport: func(ev dismiss.Event) { events = append(events, ev) },
	})
	defer ui.Controller().Unsubscribe(tok)

	if !ui.ScrollBy(2) {
		t.Fatal("ScrollBy did not move")
	}
	if ui.ScrollBy(10) && ui.ScrollOffset() != 3 {
		t.Errorf("scroll offset = %d; want clamp at 3", ui.ScrollOffset())
	}
	ui.RenderOnce()
	r, _ = ui.Bounds(field)
	if r.Y != -1 {
		t.Errorf("Bounds Y after scroll = %d; want -1", r.Y)
	}
	if len(events) == 0 || events[0].Kind != dismiss.Scroll {
		t.Errorf("viewport events = %+v; want scroll", events)
	}
}

func TestTUI_AfterPaintRunsAfterFrame(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 20, 5)
	comp := &mockComponent{lines: []string{"trigger"}}
	ui.Container().Add(comp)

	var measured geom.Rect
	var ok bool
	ui.AfterPaint(func() { measured, ok = ui.Bounds(comp) })
	if ok {
		t.Fatal("callback ran before paint")
	}
	ui.RenderOnce()
	if !ok || measured.W != 7 {
		t.Errorf("measured %+v, %v after paint", measured, ok)
	}
}

func TestTUI_LayerMeasuredBeforePainted(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 30, 6)
	ui.Container().Add(&mockComponent{lines: []string{"background line"}})

	var pos *geom.Position
	list := &mockComponent{lines: []string{"ONE", "TWO"}}
	ui.AddLayer(Layer{
		ID:        "list",
		Component: list,
		Position: func() (geom.Position, bool) {
			if pos == nil {
				return geom.Position{}, false
			}
			return *pos, true
		},
	})

	ui.RenderOnce()
	if strings.Contains(out.String(), "ONE") {
		t.Fatal("unpositioned layer was painted")
	}
	size, ok := ui.LayerSize("list")
	if !ok || size.W != 3 || size.H != 2 {
		t.Fatalf("LayerSize = %+v, %v; want 3x2", size, ok)
	}
	if _, ok := ui.LayerRect("list"); ok {
		t.Fatal("unpainted layer reported a rect")
	}

	pos = &geom.Position{Top: 0, Left: 4}
	out.Reset()
	ui.RenderOnce()
	if !strings.Contains(out.String(), "back") || !strings.Contains(out.String(), "ONE") {
		t.Errorf("layer not spliced over background: %q", out.String())
	}
	rect, ok := ui.LayerRect("list")
	if !ok || rect != (geom.Rect{X: 4, Y: 0, W: 3, H: 2}) {
		t.Errorf("LayerRect = %+v, %v", rect, ok)
	}

	ui.RemoveLayer("list")
	ui.RenderOnce()
	if _, ok := ui.LayerSize("list"); ok {
		t.Error("removed layer still measured")
	}
}

func TestSplice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dst  string
		src  string
		col  int
		want string
	}{
		{"middle", "abcdefgh", "XY", 3, "abc\x1b[0mXY\x1b[0mfgh"},
		{"pads short line", "ab", "XY", 4, "ab  \x1b[0mXY\x1b[0m"},
		{"off screen", "abcdefgh", "XYZ", 10, "abcdefgh"},
		{"clips right edge", "abcdefghij", "XYZ", 8, "abcdefgh\x1b[0mXY\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := splice(tt.dst, tt.src, tt.col, 10); got != tt.want {
				t.Errorf("splice = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestTUI_PointerDownReachesControllerFirst(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	l := &countingListener{}
	ui := New(&out, 40, 10, WithListener(l))
	trigger := &mockComponent{lines: []string{"[ pick ]"}}
	ui.Container().Add(trigger)
	ui.RenderOnce()

	var reasons []dismiss.Reason
	tok := ui.Controller().Subscribe(dismiss.Subscription{
		ID:        "open",
		Contains:  func(x, y int) bool { return y == 0 && x < 8 },
		OnDismiss: func(r dismiss.Reason) { reasons = append(reasons, r) },
	})
	if l.installs != 1 {
		t.Errorf("listener installs = %d; want 1", l.installs)
	}

	ui.HandleKey(press(2, 0))
	if len(reasons) != 0 {
		t.Fatal("press inside the overlay region dismissed it")
	}
	if len(trigger.clicks) != 1 || !trigger.focused {
		t.Errorf("trigger clicks=%d focused=%v; want 1 and true", len(trigger.clicks), trigger.focused)
	}

	ui.HandleKey(press(20, 5))
	if len(reasons) != 1 || reasons[0] != dismiss.ReasonOutside {
		t.Errorf("reasons = %v; want [outside]", reasons)
	}

	ui.Controller().Unsubscribe(tok)
	if l.uninstalls != 1 {
		t.Errorf("listener uninstalls = %d; want 1", l.uninstalls)
	}
}

func TestTUI_EscapeAndBlurGoToController(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 40, 10)
	focused := &mockComponent{lines: []string{"input"}}
	ui.Container().Add(focused)
	ui.SetFocus(focused)

	var closed []string
	sub := func(id string) dismiss.Token {
		var tok dismiss.Token
		tok = ui.Controller().Subscribe(dismiss.Subscription{
			ID: id,
			OnDismiss: func(dismiss.Reason) {
				closed = append(closed, id)
				ui.Controller().Unsubscribe(tok)
			},
		})
		return tok
	}
	sub("a")
	sub("b")

	ui.HandleKey(key.Key{Type: key.KeyEscape})
	if len(closed) != 1 || closed[0] != "b" {
		t.Fatalf("closed = %v; want [b]", closed)
	}
	if len(focused.keys) != 0 {
		t.Error("escape that closed an overlay reached the focused component")
	}

	ui.HandleKey(key.Key{Type: key.KeyFocusOut})
	if len(closed) != 2 || closed[1] != "a" {
		t.Fatalf("closed = %v; want [b a]", closed)
	}

	ui.HandleKey(key.Key{Type: key.KeyEscape})
	if len(focused.keys) != 1 {
		t.Error("escape with no overlay open did not reach the focused component")
	}
}

func TestTUI_KeysFallThroughToOnKey(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 40, 10)
	a := &mockComponent{lines: []string{"a"}}
	b := &mockComponent{lines: []string{"b"}}
	ui.Container().Add(a)
	ui.Container().Add(b)
	ui.RenderOnce()
	ui.SetFocus(a)

	ui.OnKey(func(k key.Key) bool {
		if k.Type == key.KeyTab {
			ui.FocusNext()
			return true
		}
		return false
	})

	ui.HandleKey(key.Key{Type: key.KeyRune, Rune: 'q'})
	if len(a.keys) != 1 {
		t.Fatal("rune did not reach focused component")
	}
	ui.HandleKey(key.Key{Type: key.KeyTab})
	if ui.Focused() != b || a.focused || !b.focused {
		t.Error("Tab did not move focus to b")
	}
	ui.HandleKey(key.Key{Type: key.KeyTab})
	if ui.Focused() != a {
		t.Error("focus did not wrap to a")
	}
	ui.FocusPrev()
	if ui.Focused() != b {
		t.Error("FocusPrev did not wrap to b")
	}
}

func TestTUI_ResizeNotifiesAndRedraws(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 40, 10)
	comp := &mockComponent{lines: []string{"x"}}
	ui.Container().Add(comp)
	ui.RenderOnce()

	var got dismiss.Event
	tok := ui.Controller().Subscribe(dismiss.Subscription{
		ID:         "w",
		OnViewport: func(ev dismiss.Event) { got = ev },
	})
	defer ui.Controller().Unsubscribe(tok)

	out.Reset()
	ui.SetSize(60, 12)
	ui.RenderOnce()
	if got.Kind != dismiss.Resize || got.W != 60 || got.H != 12 {
		t.Errorf("viewport event = %+v", got)
	}
	if !comp.dirty {
		t.Error("resize did not invalidate components")
	}
	if !strings.Contains(out.String(), "\x1b[2J") {
		t.Error("resize did not force a full redraw")
	}
	if ui.Viewport() != (geom.Rect{W: 60, H: 12}) {
		t.Errorf("Viewport = %+v", ui.Viewport())
	}
}

func TestTUI_PostRunsOnLoop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ui := New(&out, 10, 2)
	ui.Start()
	defer ui.Stop()

	done := make(chan int)
	ui.Post(func() { done <- 42 })
	if v := <-done; v != 42 {
		t.Errorf("posted func returned %d", v)
	}
}
