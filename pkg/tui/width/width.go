// ABOUTME: Display width of terminal strings: escapes are free, clusters use go-runewidth
// ABOUTME: Printable ASCII is measured directly; other strings go through a bounded cache

package width

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// cacheLimit bounds the measurement cache; a full cache is dropped and refilled.
const cacheLimit = 1024

type widthCache struct {
	mu sync.Mutex
	m  map[string]int
}

func (c *widthCache) get(s string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.m[s]
	return w, ok
}

func (c *widthCache) put(s string, w int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil || len(c.m) >= cacheLimit {
		c.m = make(map[string]int, cacheLimit)
	}
	c.m[s] = w
}

var widths widthCache

// VisibleWidth returns the number of terminal columns s occupies.
func VisibleWidth(s string) int {
	if plainASCII(s) {
		return len(s)
	}
	if w, ok := widths.get(s); ok {
		return w
	}
	w := 0
	scan(s, func(t token) bool {
		w += t.width
		return true
	})
	widths.put(s, w)
	return w
}

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexByte(s, esc)
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]
		s = s[escapeLen(s):]
	}
	return b.String()
}

func plainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// clusterWidth is the width of a grapheme cluster: that of its base rune.
// Control characters occupy nothing.
func clusterWidth(cluster string) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return runewidth.RuneWidth(r)
}
