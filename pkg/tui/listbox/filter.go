// ABOUTME: Option filters for the list box: case-folded substring (default) and fuzzy
// ABOUTME: Filters return indexes into the full option universe, in display order

package listbox

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/pledgeboard/pledge-tui/pkg/tui/fuzzy"
)

// Option is one selectable choice.
type Option struct {
	Value string
	Label string
}

// Filter returns the indexes of options matching term, in display order.
// An empty term must return every index.
type Filter func(options []Option, term string) []int

// SubstringFilter keeps options whose label contains term, ignoring case.
// Order is preserved; there is no scoring.
func SubstringFilter(options []Option, term string) []int {
	out := make([]int, 0, len(options))
	if term == "" {
		for i := range options {
			out = append(out, i)
		}
		return out
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for i, o := range options {
		if strings.Contains(fold.String(o.Label), needle) {
			out = append(out, i)
		}
	}
	return out
}

// MatchSpan returns the byte range of the first run of runes in label whose
// case folding equals term's, the same folding SubstringFilter applies.
func MatchSpan(label, term string) (start, end int, ok bool) {
	if term == "" {
		return 0, 0, false
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for i := range label {
		for j := i; j < len(label); {
			_, size := utf8.DecodeRuneInString(label[j:])
			j += size
			got := fold.String(label[i:j])
			if got == needle {
				return i, j, true
			}
			if !strings.HasPrefix(needle, got) {
				break
			}
		}
	}
	return 0, 0, false
}

// FuzzyFilter ranks options by fuzzy score, best first.
func FuzzyFilter(options []Option, term string) []int {
	if term == "" {
		return SubstringFilter(options, term)
	}
	return fuzzy.Rank(term, len(options), func(i int) string { return options[i].Label })
}
