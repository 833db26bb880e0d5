package pool

import (
	"strings"
	"testing"
)

func TestFrameIsEmpty(t *testing.T) {
	buf := Frame()
	buf.WriteString("frame")
	ReleaseFrame(buf)

	if got := Frame(); got.Len() != 0 {
		t.Errorf("Frame() len = %d; want 0", got.Len())
	}
}

func TestBuilderIsEmpty(t *testing.T) {
	sb := Builder()
	sb.WriteString("diff")
	ReleaseBuilder(sb)

	if got := Builder(); got.Len() != 0 {
		t.Errorf("Builder() len = %d; want 0", got.Len())
	}
}

func TestReleaseDropsOversized(t *testing.T) {
	sb := Builder()
	sb.WriteString(strings.Repeat("x", maxPooled+1))
	ReleaseBuilder(sb) // must not panic or retain
	ReleaseBuilder(nil)
	ReleaseFrame(nil)
}

func TestOf_ResetsAndFilters(t *testing.T) {
	var allocs int
	p := New(
		func() *[]int { allocs++; s := make([]int, 0, 4); return &s },
		func(s *[]int) { *s = (*s)[:0] },
		func(s *[]int) bool { return cap(*s) <= 8 },
	)

	s := p.Get()
	*s = append(*s, 1, 2, 3)
	p.Put(s)
	if got := p.Get(); len(*got) != 0 {
		t.Errorf("pooled slice len = %d; want 0", len(*got))
	}

	big := make([]int, 0, 100)
	p.Put(&big) // rejected by keep
	if allocs == 0 {
		t.Error("alloc never called")
	}
}
