// ABOUTME: Container stacks child components vertically in insertion order
// ABOUTME: Records the rows each child produced so hit testing and focus order can use them

package tui

import (
	"slices"
	"sync"
)

// Container is a vertical stack of components. Children may be added or
// removed from any goroutine; Render holds a read lock for the whole pass.
type Container struct {
	mu       sync.RWMutex
	children []Component
}

func NewContainer() *Container {
	return &Container{}
}

// Add appends comps in order.
func (c *Container) Add(comps ...Component) {
	c.mu.Lock()
	c.children = append(c.children, comps...)
	c.mu.Unlock()
}

// Remove drops comp and reports whether it was present.
func (c *Container) Remove(comp Component) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.Index(c.children, comp)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	return true
}

// Children returns a copy of the stack.
func (c *Container) Children() []Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.children)
}

func (c *Container) Render(out *RenderBuffer, width int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, child := range c.children {
		from := out.Len()
		child.Render(out, width)
		out.Mark(child, from)
	}
}

func (c *Container) Invalidate() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, child := range c.children {
		child.Invalidate()
	}
}
