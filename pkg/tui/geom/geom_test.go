// ABOUTME: Tests for overlay placement math: every side/align pair, clamp, flip
// ABOUTME: Includes determinism and the bottom-start reference case

package geom

import "testing"

var screen = Rect{X: 0, Y: 0, W: 80, H: 24}

func TestComputePosition_BottomStartReference(t *testing.T) {
	t.Parallel()

	trigger := Rect{X: 10, Y: 10, W: 100, H: 20}
	overlay := Rect{W: 50, H: 30}

	got := ComputePosition(trigger, overlay, Placement{Side: Bottom, Align: Start}, screen)
	want := Position{Top: 30, Left: 10}
	if got != want {
		t.Errorf("ComputePosition = %+v; want %+v", got, want)
	}
}

func TestComputePosition_AllPlacements(t *testing.T) {
	t.Parallel()

	trigger := Rect{X: 20, Y: 10, W: 10, H: 2}
	overlay := Rect{W: 6, H: 4}

	tests := []struct {
		p    string
		want Position
	}{
		{"bottom-start", Position{Top: 12, Left: 20}},
		{"bottom-center", Position{Top: 12, Left: 22}},
		{"bottom-end", Position{Top: 12, Left: 24}},
		{"top-start", Position{Top: 6, Left: 20}},
		{"top-center", Position{Top: 6, Left: 22}},
		{"top-end", Position{Top: 6, Left: 24}},
		{"left-start", Position{Top: 10, Left: 14}},
		{"left-center", Position{Top: 9, Left: 14}},
		{"left-end", Position{Top: 8, Left: 14}},
		{"right-start", Position{Top: 10, Left: 30}},
		{"right-center", Position{Top: 9, Left: 30}},
		{"right-end", Position{Top: 8, Left: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.p, func(t *testing.T) {
			t.Parallel()
			p, err := ParsePlacement(tt.p)
			if err != nil {
				t.Fatalf("ParsePlacement(%q): %v", tt.p, err)
			}
			got := ComputePosition(trigger, overlay, p, screen)
			if got != tt.want {
				t.Errorf("ComputePosition(%s) = %+v; want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestComputePosition_Deterministic(t *testing.T) {
	t.Parallel()

	trigger := Rect{X: 3, Y: 7, W: 11, H: 1}
	overlay := Rect{W: 20, H: 5}
	p := Placement{Side: Top, Align: Center}

	a := ComputePosition(trigger, overlay, p, screen)
	b := ComputePosition(trigger, overlay, p, screen)
	if a != b {
		t.Errorf("two calls differ: %+v vs %+v", a, b)
	}
}

func TestComputePosition_NoClampOutsideViewport(t *testing.T) {
	t.Parallel()

	trigger := Rect{X: 75, Y: 22, W: 5, H: 1}
	overlay := Rect{W: 20, H: 6}

	got := ComputePosition(trigger, overlay, Placement{Side: Bottom, Align: Start}, screen)
	want := Position{Top: 23, Left: 75}
	if got != want {
		t.Errorf("ComputePosition = %+v; want naive %+v", got, want)
	}
}

func TestComputePosition_NegativeSizesAccepted(t *testing.T) {
	t.Parallel()

	trigger := Rect{X: 5, Y: 5, W: -4, H: -2}
	overlay := Rect{W: -3, H: -1}

	got := ComputePosition(trigger, overlay, Placement{Side: Right, Align: End}, screen)
	want := Position{Top: 4, Left: 1}
	if got != want {
		t.Errorf("ComputePosition = %+v; want %+v", got, want)
	}
}

func TestComputePosition_CenterFloorsOddOverhang(t *testing.T) {
	t.Parallel()

	trigger := Rect{X: 10, Y: 0, W: 4, H: 1}
	overlay := Rect{W: 7, H: 1}

	got := ComputePosition(trigger, overlay, Placement{Side: Bottom, Align: Center}, screen)
	if got.Left != 8 {
		t.Errorf("Left = %d; want 8", got.Left)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	overlay := Rect{W: 20, H: 6}
	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"inside", Position{Top: 2, Left: 2}, Position{Top: 2, Left: 2}},
		{"right overflow", Position{Top: 2, Left: 70}, Position{Top: 2, Left: 60}},
		{"bottom overflow", Position{Top: 23, Left: 0}, Position{Top: 18, Left: 0}},
		{"negative", Position{Top: -3, Left: -9}, Position{Top: 0, Left: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clamp(tt.in, overlay, screen); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v; want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFlip(t *testing.T) {
	t.Parallel()

	overlay := Rect{W: 10, H: 6}

	nearBottom := Rect{X: 5, Y: 20, W: 8, H: 1}
	if got := Flip(nearBottom, overlay, Placement{Side: Bottom}, screen); got.Side != Top {
		t.Errorf("Flip near bottom = %s; want top-start", got)
	}

	roomy := Rect{X: 5, Y: 5, W: 8, H: 1}
	if got := Flip(roomy, overlay, Placement{Side: Bottom}, screen); got.Side != Bottom {
		t.Errorf("Flip with room = %s; want bottom-start", got)
	}

	tiny := Rect{X: 0, Y: 0, W: 80, H: 3}
	tall := Rect{X: 5, Y: 1, W: 8, H: 1}
	if got := Flip(tall, Rect{W: 10, H: 6}, Placement{Side: Bottom}, tiny); got.Side != Bottom {
		t.Errorf("Flip when neither side fits = %s; want the requested side", got)
	}
}

func TestParsePlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Placement
		wantErr bool
	}{
		{"bottom", Placement{Side: Bottom, Align: Start}, false},
		{"Top-End", Placement{Side: Top, Align: End}, false},
		{" right-center ", Placement{Side: Right, Align: Center}, false},
		{"middle", Placement{}, true},
		{"left-sideways", Placement{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePlacement(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePlacement(%q) err = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlacement(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	t.Parallel()

	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	if !r.Contains(2, 3) || !r.Contains(5, 4) {
		t.Error("expected corners inside")
	}
	if r.Contains(6, 3) || r.Contains(2, 5) || r.Contains(1, 3) {
		t.Error("expected outside points rejected")
	}
}
