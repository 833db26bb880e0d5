package component

import (
	"testing"

	"github.com/pledgeboard/pledge-tui/pkg/tui/theme"
)

func TestHighlightMatch(t *testing.T) {
	t.Parallel()

	u := theme.NewColor("\x1b[4m")
	tests := []struct {
		name, label, term, want string
	}{
		{name: "no term", label: "Deluxe", term: "", want: "Deluxe"},
		{name: "substring", label: "Early Bird", term: "bir", want: "Early " + u.Apply("Bir") + "d"},
		{name: "fuzzy", label: "Deluxe", term: "dlx", want: u.Apply("D") + "e" + u.Apply("l") + "u" + u.Apply("x") + "e"},
		{name: "no match", label: "Deluxe", term: "q", want: "Deluxe"},
		{name: "folded sharp s", label: "Straße Kit", term: "SS", want: "Stra" + u.Apply("ß") + "e Kit"},
		{name: "folded across runes", label: "Masse", term: "ß", want: "Ma" + u.Apply("ss") + "e"},
	}
	for _, tt := range tests {
		if got := highlightMatch(tt.label, tt.term, u); got != tt.want {
			t.Errorf("%s: highlightMatch(%q, %q) = %q; want %q", tt.name, tt.label, tt.term, got, tt.want)
		}
	}

	if got := highlightMatch("Deluxe", "lux", theme.Color{}); got != "Deluxe" {
		t.Errorf("uncolored highlight = %q", got)
	}
}
