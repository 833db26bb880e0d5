// ABOUTME: Tests for fuzzy label ranking and matched positions
// ABOUTME: Uses reward tier names as the candidate set

package fuzzy

import (
	"slices"
	"testing"
)

var tierNames = []string{"Early Bird", "Standard", "Deluxe Box", "Collector's Bundle"}

func at(i int) string { return tierNames[i] }

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		first   int
		count   int
	}{
		{pattern: "dlx", first: 2, count: 1},
		{pattern: "eb", first: 0, count: -1},
		{pattern: "stnd", first: 1, count: 1},
		{pattern: "zzz", first: -1, count: 0},
	}
	for _, tt := range tests {
		got := Rank(tt.pattern, len(tierNames), at)
		if tt.count >= 0 && len(got) != tt.count {
			t.Errorf("Rank(%q) = %v; want %d matches", tt.pattern, got, tt.count)
			continue
		}
		if tt.first >= 0 && (len(got) == 0 || got[0] != tt.first) {
			t.Errorf("Rank(%q) = %v; want %q first", tt.pattern, got, tierNames[tt.first])
		}
	}
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()

	if got := Rank("x", 0, at); len(got) != 0 {
		t.Errorf("Rank over no labels = %v", got)
	}
}

func TestPositions(t *testing.T) {
	t.Parallel()

	if got, want := Positions("dlx", "Deluxe"), []int{0, 2, 4}; !slices.Equal(got, want) {
		t.Errorf("Positions(dlx, Deluxe) = %v; want %v", got, want)
	}
	if got := Positions("q", "Deluxe"); got != nil {
		t.Errorf("Positions(q, Deluxe) = %v; want nil", got)
	}
}
