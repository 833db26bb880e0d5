// ABOUTME: Cutting styled text to columns: hard wrap, ellipsis truncation, column slicing
// ABOUTME: Escape sequences are carried through; wrapped lines re-open the active SGR style

package width

import "strings"

const ellipsis = "…"

// WrapTextWithAnsi breaks s into lines of at most maxWidth columns,
// splitting at newlines and wherever the next cluster would overflow.
// Each continuation line starts with the styling still in effect.
func WrapTextWithAnsi(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		col   int
		style sgr
	)
	newLine := func() {
		lines = append(lines, line.String())
		line.Reset()
		line.WriteString(style.prefix())
		col = 0
	}

	scan(s, func(t token) bool {
		switch {
		case t.seq:
			style.apply(t.text)
			line.WriteString(t.text)
		case t.text == "\n" || t.text == "\r\n":
			newLine()
		default:
			if col > 0 && col+t.width > maxWidth {
				newLine()
			}
			line.WriteString(t.text)
			col += t.width
		}
		return true
	})
	return append(lines, line.String())
}

// TruncateToWidth cuts s to maxWidth columns, ending in a reset and an
// ellipsis when anything was dropped.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return ellipsis
	}

	keep := maxWidth - 1
	var b strings.Builder
	col := 0
	scan(s, func(t token) bool {
		if col >= keep || col+t.width > keep {
			return false
		}
		b.WriteString(t.text)
		col += t.width
		return true
	})
	b.WriteString("\x1b[0m")
	b.WriteString(ellipsis)
	return b.String()
}

// SliceByColumn returns the clusters of s that overlap columns
// [start, end), plus every escape sequence so styling survives.
func SliceByColumn(s string, start, end int) string {
	if start >= end || s == "" {
		return ""
	}
	var b strings.Builder
	col := 0
	scan(s, func(t token) bool {
		if t.seq {
			b.WriteString(t.text)
			return true
		}
		if col+t.width > start && col < end {
			b.WriteString(t.text)
		}
		col += t.width
		return true
	})
	return b.String()
}

// PadRight truncates s to w columns and fills the rest with spaces.
func PadRight(s string, w int) string {
	s = TruncateToWidth(s, w)
	if gap := w - VisibleWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
