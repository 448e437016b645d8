package reorder

import "testing"

func TestAutoScroll_ZeroInsideSafeZone(t *testing.T) {
	a := AutoScroll{EdgeWidth: 50, MaxVelocity: 60}
	for _, c := range []float64{50.0001, 100, 250, 449.999} {
		if v := a.Velocity(c, 0, 500); v != 0 {
			t.Fatalf("center %v: expected 0 velocity; got %v", c, v)
		}
	}
	// Exactly on the boundaries is still outside the zones.
	if v := a.Velocity(50, 0, 500); v != 0 {
		t.Fatalf("expected 0 at up boundary; got %v", v)
	}
	if v := a.Velocity(450, 0, 500); v != 0 {
		t.Fatalf("expected 0 at down boundary; got %v", v)
	}
}

func TestAutoScroll_SignAndQuadraticRamp(t *testing.T) {
	a := AutoScroll{EdgeWidth: 100, MaxVelocity: 60}

	// Half-way into the top zone: t=0.5 => -60*0.25.
	if v := a.Velocity(50, 0, 1000); v != -15 {
		t.Fatalf("expected -15; got %v", v)
	}
	// Half-way into the bottom zone.
	if v := a.Velocity(950, 0, 1000); v != 15 {
		t.Fatalf("expected 15; got %v", v)
	}
	// Beyond the edge clamps to max.
	if v := a.Velocity(-300, 0, 1000); v != -60 {
		t.Fatalf("expected -60 past top edge; got %v", v)
	}
	if v := a.Velocity(1400, 0, 1000); v != 60 {
		t.Fatalf("expected 60 past bottom edge; got %v", v)
	}
}

func TestAutoScroll_MonotonicInPenetration(t *testing.T) {
	a := DefaultAutoScroll()
	start, end := 0.0, 1000.0
	upEdge := start + a.EdgeWidth
	downEdge := end - a.EdgeWidth

	prevUp, prevDown := 0.0, 0.0
	for i := 1; i <= 10; i++ {
		depth := a.EdgeWidth * float64(i) / 10
		up := a.Velocity(upEdge-depth, start, end)
		down := a.Velocity(downEdge+depth, start, end)
		if -up <= prevUp {
			t.Fatalf("top zone not increasing at depth %v: %v <= %v", depth, -up, prevUp)
		}
		if down <= prevDown {
			t.Fatalf("bottom zone not increasing at depth %v: %v <= %v", depth, down, prevDown)
		}
		prevUp, prevDown = -up, down
	}
}

func TestAutoScroll_DisabledByZeroConfig(t *testing.T) {
	var a AutoScroll
	if v := a.Velocity(-10, 0, 100); v != 0 {
		t.Fatalf("expected zero config to never scroll; got %v", v)
	}
}
