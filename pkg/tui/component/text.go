// ABOUTME: Static text display component for the TUI
// ABOUTME: Wraps content to the render width and caches the result per width

package component

import (
	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// Text renders static text content.
type Text struct {
	content string
	color   theme.Color
	lines   []string
	width   int
	dirty   bool
}

// NewText creates a Text component with the given content.
func NewText(content string) *Text {
	return &Text{content: content, dirty: true}
}

// WithColor styles every line with c.
func (t *Text) WithColor(c theme.Color) *Text {
	t.color = c
	t.dirty = true
	return t
}

// SetContent updates the displayed text.
func (t *Text) SetContent(content string) {
	t.content = content
	t.dirty = true
}

// Content returns the raw text.
func (t *Text) Content() string { return t.content }

// Render writes the wrapped text lines into the buffer.
func (t *Text) Render(out *tui.RenderBuffer, w int) {
	if t.dirty || t.width != w {
		t.lines = width.WrapTextWithAnsi(t.content, w)
		if t.color.Code() != "" {
			for i, l := range t.lines {
				t.lines[i] = t.color.Apply(l)
			}
		}
		t.width = w
		t.dirty = false
	}
	out.WriteLines(t.lines)
}

// Invalidate marks the component for re-render.
func (t *Text) Invalidate() {
	t.dirty = true
}
