package reorder

const (
	DefaultEdgeWidth   = 84
	DefaultMaxVelocity = 60
)

// AutoScroll maps the dragged item's visual center to a scroll velocity.
//
// Inside the band [Start+EdgeWidth, End-EdgeWidth] the velocity is zero. Within
// an edge zone the velocity grows with the square of the normalized penetration,
// so it ramps gently at the zone boundary and accelerates near the edge.
type AutoScroll struct {
	EdgeWidth   float64
	MaxVelocity float64
}

func DefaultAutoScroll() AutoScroll {
	return AutoScroll{EdgeWidth: DefaultEdgeWidth, MaxVelocity: DefaultMaxVelocity}
}

// Velocity returns the scroll delta for a center position. Negative moves the
// viewport toward earlier items.
func (a AutoScroll) Velocity(center, start, end float64) float64 {
	if a.EdgeWidth <= 0 || a.MaxVelocity <= 0 {
		return 0
	}
	upEdge := start + a.EdgeWidth
	downEdge := end - a.EdgeWidth
	switch {
	case center < upEdge:
		t := clamp01((upEdge - center) / a.EdgeWidth)
		return -a.MaxVelocity * t * t
	case center > downEdge:
		t := clamp01((center - downEdge) / a.EdgeWidth)
		return a.MaxVelocity * t * t
	default:
		return 0
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
