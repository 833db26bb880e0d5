// ABOUTME: Layers are components painted above the main content at absolute cells
// ABOUTME: A layer is measured every frame but painted only once it has a position

package tui

import (
	"strings"

	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
	"github.com/pledgeboard/pledge-tui/pkg/tui/width"
)

// Layer is a floating surface drawn on top of the main container.
type Layer struct {
	ID        string
	Component Component
	// Width is the render width; 0 means the terminal width.
	Width int
	// MaxHeight caps the rendered rows; 0 means no cap.
	MaxHeight int
	// Position returns the top-left cell. Until it reports ok the layer
	// is measured but not painted.
	Position func() (geom.Position, bool)
}

// paintedLayer is a layer's geometry from the last frame.
type paintedLayer struct {
	layer   Layer
	size    geom.Rect
	rect    geom.Rect
	painted bool
}

// renderLayer renders l and returns its lines and size.
func renderLayer(l Layer, termWidth int) ([]string, geom.Rect) {
	lw := l.Width
	if lw <= 0 || lw > termWidth {
		lw = termWidth
	}
	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)
	l.Component.Render(buf, lw)

	lines := buf.Lines
	if l.MaxHeight > 0 && len(lines) > l.MaxHeight {
		lines = lines[:l.MaxHeight]
	}
	out := make([]string, len(lines))
	copy(out, lines)

	w := 0
	for _, line := range out {
		w = max(w, width.VisibleWidth(line))
	}
	return out, geom.Rect{W: w, H: len(out)}
}

// splice paints src over dst starting at visible column col. Cells of dst
// outside [col, col+width(src)) are kept with their styling.
func splice(dst, src string, col, termWidth int) string {
	if col >= termWidth {
		return dst
	}
	srcW := width.VisibleWidth(src)
	if col < 0 {
		src = width.SliceByColumn(src, -col, srcW)
		srcW += col
		col = 0
	}
	if col+srcW > termWidth {
		src = width.SliceByColumn(src, 0, termWidth-col)
		srcW = termWidth - col
	}

	dstW := width.VisibleWidth(dst)
	if dstW < col {
		dst += strings.Repeat(" ", col-dstW)
		dstW = col
	}

	var b strings.Builder
	b.WriteString(width.SliceByColumn(dst, 0, col))
	b.WriteString("\x1b[0m")
	b.WriteString(src)
	b.WriteString("\x1b[0m")
	if end := col + srcW; end < dstW {
		b.WriteString(width.SliceByColumn(dst, end, dstW))
	}
	return b.String()
}
