// ABOUTME: Frame draws a lipgloss border around a child component
// ABOUTME: A child that renders no lines produces no frame, so closed overlays stay unmeasurable

package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
)

// Frame wraps a child with a rounded border.
type Frame struct {
	Child tui.Component
	style lipgloss.Style
}

// NewFrame creates a Frame around child.
func NewFrame(child tui.Component) *Frame {
	return &Frame{
		Child: child,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
	}
}

// WithBorderColor sets the border color (any lipgloss color string).
func (f *Frame) WithBorderColor(color string) *Frame {
	f.style = f.style.BorderForeground(lipgloss.Color(color))
	return f
}

// Render draws the child inside the border.
func (f *Frame) Render(out *tui.RenderBuffer, width int) {
	inner := width - 2
	if inner <= 0 {
		return
	}
	buf := tui.AcquireBuffer()
	defer tui.ReleaseBuffer(buf)

	f.Child.Render(buf, inner)
	if buf.Len() == 0 {
		return
	}
	out.WriteLines(strings.Split(f.style.Render(strings.Join(buf.Lines, "\n")), "\n"))
}

// Invalidate invalidates the child.
func (f *Frame) Invalidate() {
	if f.Child != nil {
		f.Child.Invalidate()
	}
}

// HandleMouse forwards events inside the border to the child.
func (f *Frame) HandleMouse(m key.Mouse) bool {
	h, ok := f.Child.(tui.MouseHandler)
	if !ok || m.X < 1 || m.Y < 1 {
		return false
	}
	m.X--
	m.Y--
	return h.HandleMouse(m)
}
