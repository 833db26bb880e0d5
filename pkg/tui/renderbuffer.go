// ABOUTME: RenderBuffer collects the lines of one frame and the row span of each component
// ABOUTME: Buffers are pooled across frames; spans feed hit testing and focus order

package tui

import (
	"github.com/pledgeboard/pledge-tui/pkg/tui/internal/pool"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// maxPooledLines keeps a huge one-off frame from staying in the pool.
const maxPooledLines = 4096

var renderBuffers = pool.New(
	func() *RenderBuffer { return &RenderBuffer{Lines: make([]string, 0, 64)} },
	(*RenderBuffer).Reset,
	func(b *RenderBuffer) bool { return b != nil && cap(b.Lines) <= maxPooledLines },
)

// AcquireBuffer returns an empty buffer. Pair it with ReleaseBuffer.
func AcquireBuffer() *RenderBuffer {
	return renderBuffers.Get()
}

// ReleaseBuffer recycles b. b must not be used afterwards.
func ReleaseBuffer(b *RenderBuffer) {
	renderBuffers.Put(b)
}

// Span is the block of rows a component wrote during one render.
// Width is the widest of those rows in visible columns.
type Span struct {
	Component Component
	Start     int
	End       int
	Width     int
}

// RenderBuffer is what components render into.
type RenderBuffer struct {
	Lines []string
	spans []Span
}

func (b *RenderBuffer) WriteLine(line string) {
	b.Lines = append(b.Lines, line)
}

func (b *RenderBuffer) WriteLines(lines []string) {
	b.Lines = append(b.Lines, lines...)
}

// Mark records that c produced the rows from start to the current end.
// Nested containers mark their children before themselves, so inner
// components come first in Spans.
func (b *RenderBuffer) Mark(c Component, start int) {
	end := len(b.Lines)
	if start < 0 || start > end {
		return
	}
	w := 0
	for _, line := range b.Lines[start:end] {
		w = max(w, width.VisibleWidth(line))
	}
	b.spans = append(b.spans, Span{Component: c, Start: start, End: end, Width: w})
}

// Spans returns the recorded spans in marking order.
func (b *RenderBuffer) Spans() []Span {
	return b.spans
}

// Reset empties the buffer, keeping its capacity.
func (b *RenderBuffer) Reset() {
	clear(b.Lines)
	clear(b.spans)
	b.Lines = b.Lines[:0]
	b.spans = b.spans[:0]
}

func (b *RenderBuffer) Len() int {
	return len(b.Lines)
}
