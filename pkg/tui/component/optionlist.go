// ABOUTME: OptionList renders the visible window of a listbox.Machine
// ABOUTME: Highlight, committed check mark and an empty-result row; pointer rows select

package component

import (
	"fmt"
	"strings"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/fuzzy"
	"github.com/pledgeboard/pledge-tui/pkg/tui/key"
	"github.com/pledgeboard/pledge-tui/pkg/tui/listbox"
	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

const (
	checkMark    = "✓ "
	noMatchesRow = "No matches"
)

// OptionList draws the open list of a Machine. It renders nothing while
// the machine is closed.
type OptionList struct {
	m      *listbox.Machine
	height int
}

// NewOptionList creates a list view showing at most height rows.
func NewOptionList(m *listbox.Machine, height int) *OptionList {
	return &OptionList{m: m, height: height}
}

// Render writes the visible options.
func (l *OptionList) Render(out *tui.RenderBuffer, w int) {
	s := l.m.State()
	if !s.Open || w <= 2 {
		return
	}
	p := theme.Current().Palette
	visible := l.m.Visible()
	if len(visible) == 0 {
		out.WriteLine(p.Muted.Apply(width.PadRight(noMatchesRow, w)))
		return
	}

	start, end := l.window(s, len(visible))
	for i := start; i < end; i++ {
		o := visible[i]
		prefix := "  "
		if s.HasCommitted && o.Value == s.Committed {
			prefix = checkMark
		}
		var line string
		if i == s.Highlighted {
			line = p.Selection.Apply(width.PadRight(prefix+o.Label, w))
		} else {
			line = width.PadRight(prefix+highlightMatch(o.Label, s.SearchTerm, p.Match), w)
		}
		out.WriteLine(line)
	}
	if end-start < len(visible) {
		out.WriteLine(p.Muted.Apply(width.PadRight(fmt.Sprintf("  %d/%d", max(s.Highlighted+1, 0), len(visible)), w)))
	}
}

// Invalidate is a no-op; OptionList re-renders from machine state every frame.
func (l *OptionList) Invalidate() {}

// HandleMouse selects the option under a press and navigates on the wheel.
func (l *OptionList) HandleMouse(m key.Mouse) bool {
	s := l.m.State()
	if !s.Open {
		return false
	}
	switch m.Button {
	case key.MouseWheelUp:
		l.m.Navigate(listbox.Prev)
		return true
	case key.MouseWheelDown:
		l.m.Navigate(listbox.Next)
		return true
	}
	if !m.IsPress() || m.Button != key.MouseLeft {
		return false
	}
	visible := l.m.Visible()
	start, end := l.window(s, len(visible))
	i := start + m.Y
	if m.Y < 0 || i >= end {
		return false
	}
	l.m.Select(visible[i].Value)
	return true
}

func (l *OptionList) window(s listbox.State, n int) (start, end int) {
	start = min(max(s.ScrollOffset, 0), n)
	end = n
	if l.height > 0 {
		end = min(start+l.height, n)
	}
	return start, end
}

// highlightMatch styles the first case-folded occurrence of term, or
// the fuzzy-matched characters when term is not a substring.
func highlightMatch(label, term string, c theme.Color) string {
	if term == "" || c.Code() == "" {
		return label
	}
	if i, j, ok := listbox.MatchSpan(label, term); ok {
		return label[:i] + c.Apply(label[i:j]) + label[j:]
	}

	pos := fuzzy.Positions(term, label)
	if pos == nil {
		return label
	}
	var b strings.Builder
	for i, r := range label {
		if len(pos) > 0 && pos[0] == i {
			b.WriteString(c.Apply(string(r)))
			pos = pos[1:]
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
