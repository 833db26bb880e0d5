// ABOUTME: Markdown component rendered through glamour
// ABOUTME: Renders are cached by content hash and width; render errors fall back to wrapped text

package component

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// MarkdownStyle selects the glamour style: "dark", "light", "notty" or "auto".
type MarkdownStyle string

const DefaultMarkdownStyle MarkdownStyle = "dark"

// Markdown renders markdown source.
type Markdown struct {
	style MarkdownStyle

	mu     sync.Mutex
	source string
	cache  map[string][]string // "hash:width" -> lines
}

// NewMarkdown creates a Markdown component.
func NewMarkdown(source string, style MarkdownStyle) *Markdown {
	if style == "" {
		style = DefaultMarkdownStyle
	}
	return &Markdown{style: style, source: source, cache: make(map[string][]string)}
}

// SetSource replaces the markdown source.
func (m *Markdown) SetSource(source string) {
	m.mu.Lock()
	m.source = source
	m.mu.Unlock()
}

// Render writes the styled lines.
func (m *Markdown) Render(out *tui.RenderBuffer, w int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == "" || w <= 0 {
		return
	}
	key := cacheKey(m.source, w)
	lines, ok := m.cache[key]
	if !ok {
		lines = m.render(w)
		m.cache[key] = lines
	}
	out.WriteLines(lines)
}

func (m *Markdown) render(w int) []string {
	opt := glamour.WithStandardStyle(string(m.style))
	if m.style == "auto" {
		opt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(w))
	if err != nil {
		return width.WrapTextWithAnsi(m.source, w)
	}
	rendered, err := r.Render(m.source)
	if err != nil {
		return width.WrapTextWithAnsi(m.source, w)
	}

	// glamour pads with blank margin lines and trailing spaces
	rendered = strings.Trim(rendered, "\n")
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = width.TruncateToWidth(strings.TrimRight(l, " "), w)
	}
	return lines
}

// Invalidate drops cached renders.
func (m *Markdown) Invalidate() {
	m.mu.Lock()
	clear(m.cache)
	m.mu.Unlock()
}

func cacheKey(content string, w int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], w)
}
