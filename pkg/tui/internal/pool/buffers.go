// ABOUTME: Typed sync.Pool wrapper plus the per-frame diff builder and output buffer pools
// ABOUTME: Values are reset on Put; oversized ones are dropped instead of pooled

package pool

import (
	"bytes"
	"strings"
	"sync"
)

// maxPooled caps the capacity a buffer may keep when returned.
// A full redraw of a very large screen should not pin its memory.
const maxPooled = 64 << 10

// Of is a sync.Pool of T. reset empties a value before it is pooled; keep
// rejects values that should be left to the garbage collector.
type Of[T any] struct {
	p     sync.Pool
	reset func(T)
	keep  func(T) bool
}

func New[T any](alloc func() T, reset func(T), keep func(T) bool) *Of[T] {
	o := &Of[T]{reset: reset, keep: keep}
	o.p.New = func() any { return alloc() }
	return o
}

// Get returns an empty value.
func (o *Of[T]) Get() T {
	return o.p.Get().(T)
}

// Put recycles v unless keep rejects it.
func (o *Of[T]) Put(v T) {
	if o.keep != nil && !o.keep(v) {
		return
	}
	o.reset(v)
	o.p.Put(v)
}

var frames = New(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	(*bytes.Buffer).Reset,
	func(b *bytes.Buffer) bool { return b != nil && b.Cap() <= maxPooled },
)

// Frame returns an empty output buffer.
func Frame() *bytes.Buffer { return frames.Get() }

// ReleaseFrame returns buf to the pool.
func ReleaseFrame(buf *bytes.Buffer) { frames.Put(buf) }

var builders = New(
	func() *strings.Builder { return new(strings.Builder) },
	(*strings.Builder).Reset,
	func(sb *strings.Builder) bool { return sb != nil && sb.Cap() <= maxPooled },
)

// Builder returns an empty strings.Builder.
func Builder() *strings.Builder { return builders.Get() }

// ReleaseBuilder returns sb to the pool.
func ReleaseBuilder(sb *strings.Builder) { builders.Put(sb) }
