// ABOUTME: Escape-aware tokenizer shared by measuring, wrapping, truncating and slicing
// ABOUTME: A string is a run of escape sequences (zero width) and grapheme clusters

package width

import "github.com/rivo/uniseg"

const esc = '\x1b'

// token is one escape sequence or one grapheme cluster.
type token struct {
	text  string
	width int
	seq   bool
}

// scan calls fn for each token of s in order. It stops when fn returns false.
func scan(s string, fn func(token) bool) {
	state := -1
	for len(s) > 0 {
		if s[0] == esc {
			n := escapeLen(s)
			if !fn(token{text: s[:n], seq: true}) {
				return
			}
			s, state = s[n:], -1
			continue
		}
		cluster, rest, _, next := uniseg.FirstGraphemeClusterInString(s, state)
		if !fn(token{text: cluster, width: clusterWidth(cluster)}) {
			return
		}
		s, state = rest, next
	}
}

// escapeLen returns the byte length of the escape sequence at the start
// of s. Unterminated sequences run to the end of s.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	switch s[1] {
	case '[': // CSI: parameters then a final byte in 0x40..0x7E
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return len(s)
	case ']', '_', 'P', '^': // OSC, APC, DCS, PM: end at BEL or ST
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' {
				return i + 1
			}
			if s[i] == esc && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	case '(', ')': // charset designation
		return min(3, len(s))
	default:
		return 2
	}
}

// sgr accumulates the styling in effect so it can be re-opened on a new line.
type sgr struct {
	open []string
}

func (st *sgr) apply(seq string) {
	if len(seq) < 3 || seq[1] != '[' || seq[len(seq)-1] != 'm' {
		return
	}
	if seq == "\x1b[m" || seq == "\x1b[0m" {
		st.open = st.open[:0]
		return
	}
	st.open = append(st.open, seq)
}

func (st *sgr) prefix() string {
	var out string
	for _, s := range st.open {
		out += s
	}
	return out
}
