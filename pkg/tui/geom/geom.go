// ABOUTME: Cell-based geometry for anchored overlays: Rect, Position, Placement
// ABOUTME: ComputePosition is pure; Clamp and Flip are explicit opt-in adjustments

package geom

import (
	"fmt"
	"strings"
)

// Rect is an axis-aligned box in terminal cells.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Position is the top-left cell of a placed overlay.
type Position struct {
	Top  int
	Left int
}

// Side selects which edge of the trigger the overlay attaches to.
type Side int

const (
	Bottom Side = iota
	Top
	Left
	Right
)

// Align positions the overlay along the axis orthogonal to Side.
type Align int

const (
	Start Align = iota
	Center
	End
)

var sideNames = map[Side]string{Bottom: "bottom", Top: "top", Left: "left", Right: "right"}

var alignNames = map[Align]string{Start: "start", Center: "center", End: "end"}

// Placement is the requested position of an overlay relative to its trigger.
// The zero value is bottom-start.
type Placement struct {
	Side  Side
	Align Align
}

// String returns the "side-align" form, e.g. "bottom-start".
func (p Placement) String() string {
	return sideNames[p.Side] + "-" + alignNames[p.Align]
}

// ParsePlacement parses "side" or "side-align". A bare side aligns to start.
func ParsePlacement(s string) (Placement, error) {
	side, align, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")

	var p Placement
	found := false
	for k, v := range sideNames {
		if v == side {
			p.Side, found = k, true
			break
		}
	}
	if !found {
		return Placement{}, fmt.Errorf("unknown placement side %q", side)
	}
	if align == "" {
		return p, nil
	}
	for k, v := range alignNames {
		if v == align {
			p.Align = k
			return p, nil
		}
	}
	return Placement{}, fmt.Errorf("unknown placement alignment %q", align)
}

// ComputePosition returns the top-left cell at which overlay touches the
// requested edge of trigger. It never clamps or flips: the result may lie
// partially outside viewport. Rectangles with negative sizes are used as-is.
func ComputePosition(trigger, overlay Rect, p Placement, viewport Rect) Position {
	_ = viewport // accepted for symmetry with Clamp and Flip

	switch p.Side {
	case Top:
		return Position{
			Top:  trigger.Y - overlay.H,
			Left: alignAxis(trigger.X, trigger.W, overlay.W, p.Align),
		}
	case Left:
		return Position{
			Top:  alignAxis(trigger.Y, trigger.H, overlay.H, p.Align),
			Left: trigger.X - overlay.W,
		}
	case Right:
		return Position{
			Top:  alignAxis(trigger.Y, trigger.H, overlay.H, p.Align),
			Left: trigger.X + trigger.W,
		}
	default:
		return Position{
			Top:  trigger.Y + trigger.H,
			Left: alignAxis(trigger.X, trigger.W, overlay.W, p.Align),
		}
	}
}

// alignAxis resolves one coordinate on the cross axis.
func alignAxis(origin, triggerLen, overlayLen int, a Align) int {
	switch a {
	case Center:
		return origin + floorDiv(triggerLen-overlayLen, 2)
	case End:
		return origin + triggerLen - overlayLen
	default:
		return origin
	}
}

// floorDiv divides rounding toward negative infinity so centring is
// symmetric for overlays wider than their trigger.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Clamp shifts pos so an overlay of the given size stays inside viewport.
// When the overlay is larger than the viewport the top-left edge wins.
func Clamp(pos Position, overlay Rect, viewport Rect) Position {
	pos.Left = max(viewport.X, min(pos.Left, viewport.X+viewport.W-overlay.W))
	pos.Top = max(viewport.Y, min(pos.Top, viewport.Y+viewport.H-overlay.H))
	return pos
}

// Flip returns the placement on the opposite side when p overflows the
// viewport on its main axis and the opposite side fits. Otherwise p.
func Flip(trigger, overlay Rect, p Placement, viewport Rect) Placement {
	if fits(ComputePosition(trigger, overlay, p, viewport), overlay, p.Side, viewport) {
		return p
	}
	alt := Placement{Side: opposite(p.Side), Align: p.Align}
	if fits(ComputePosition(trigger, overlay, alt, viewport), overlay, alt.Side, viewport) {
		return alt
	}
	return p
}

func opposite(s Side) Side {
	switch s {
	case Top:
		return Bottom
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Top
	}
}

// fits checks only the main axis of side; the cross axis is Clamp's job.
func fits(pos Position, overlay Rect, side Side, viewport Rect) bool {
	switch side {
	case Top, Bottom:
		return pos.Top >= viewport.Y && pos.Top+overlay.H <= viewport.Y+viewport.H
	default:
		return pos.Left >= viewport.X && pos.Left+overlay.W <= viewport.X+viewport.W
	}
}
