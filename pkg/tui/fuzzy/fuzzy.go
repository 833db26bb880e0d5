// ABOUTME: Fuzzy ranking of option labels over sahilm/fuzzy
// ABOUTME: Rank returns indexes best-first; Positions reports which bytes of a label matched

package fuzzy

import "github.com/sahilm/fuzzy"

// labels adapts an indexed label getter to fuzzy.Source.
type labels struct {
	n  int
	at func(int) string
}

func (l labels) String(i int) string { return l.at(i) }
func (l labels) Len() int            { return l.n }

// Rank scores the n labels returned by at against pattern and returns the
// indexes of those that match, best score first. Ties keep index order.
func Rank(pattern string, n int, at func(int) string) []int {
	matches := fuzzy.FindFrom(pattern, labels{n: n, at: at})
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

// Positions returns the byte offsets in s matched by pattern, or nil when s
// does not match.
func Positions(pattern, s string) []int {
	matches := fuzzy.Find(pattern, []string{s})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
