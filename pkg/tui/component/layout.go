// ABOUTME: Layout helpers for the page: blank spacer rows and a two-sided status line
// ABOUTME: The status line keeps its right side whole and truncates the left

package component

import (
	"strings"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// Spacer is a run of blank rows.
type Spacer struct {
	rows int
}

func NewSpacer(rows int) *Spacer {
	return &Spacer{rows: rows}
}

func (s *Spacer) Render(out *tui.RenderBuffer, _ int) {
	for range s.rows {
		out.WriteLine("")
	}
}

func (s *Spacer) Invalidate() {}

// StatusLine renders one row: a message on the left and a fixed hint on
// the right. When both do not fit, the message is cut first; the hint is
// dropped only when it alone is wider than the row.
type StatusLine struct {
	left  string
	right string
	color theme.Color
}

func NewStatusLine(left, right string) *StatusLine {
	return &StatusLine{left: left, right: right}
}

// WithColor styles the whole row with c.
func (s *StatusLine) WithColor(c theme.Color) *StatusLine {
	s.color = c
	return s
}

// SetLeft replaces the message.
func (s *StatusLine) SetLeft(msg string) { s.left = msg }

// Left returns the message.
func (s *StatusLine) Left() string { return s.left }

func (s *StatusLine) Render(out *tui.RenderBuffer, w int) {
	right := s.right
	rw := width.VisibleWidth(right)
	if rw >= w {
		right, rw = "", 0
	}
	room := w - rw
	if rw > 0 {
		room--
	}
	left := width.TruncateToWidth(s.left, room)
	gap := w - width.VisibleWidth(left) - rw

	var b strings.Builder
	b.WriteString(left)
	if right != "" {
		b.WriteString(strings.Repeat(" ", max(gap, 1)))
		b.WriteString(right)
	}
	line := b.String()
	if s.color.Code() != "" {
		line = s.color.Apply(line)
	}
	out.WriteLine(line)
}

func (s *StatusLine) Invalidate() {}
