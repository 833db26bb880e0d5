// ABOUTME: Screen is the engine surface overlay widgets attach to
// ABOUTME: *tui.TUI implements it; widgets measure triggers and layers through it

package component

import (
	"github.com/pledgeboard/pledge-tui/pkg/tui"
	"github.com/pledgeboard/pledge-tui/pkg/tui/dismiss"
	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
)

// Screen is what an overlay widget needs from the rendering engine.
type Screen interface {
	AfterPaint(fn func())
	RequestRender()
	Controller() *dismiss.Controller
	Bounds(c tui.Component) (geom.Rect, bool)
	LayerSize(id string) (geom.Rect, bool)
	Viewport() geom.Rect
	AddLayer(l tui.Layer)
	RemoveLayer(id string)
}

var _ Screen = (*tui.TUI)(nil)
