package reorder

// VisibleItem is the layout of one currently visible row. Offset is relative to
// the same origin as Viewport.Start/End.
type VisibleItem struct {
	Index  int
	Offset float64
	Size   float64
}

func (v VisibleItem) Center() float64 { return v.Offset + v.Size/2 }

// Viewport is a snapshot of the host scroll container taken when layout settles.
// Items are ordered by Index. Snapshots are never retained across move events.
type Viewport struct {
	Items []VisibleItem
	Start float64
	End   float64
}

// Find returns the visible record for a logical index.
func (v Viewport) Find(index int) (VisibleItem, bool) {
	for _, it := range v.Items {
		if it.Index == index {
			return it, true
		}
	}
	return VisibleItem{}, false
}

// ScrollController applies a scroll delta clamped to content bounds and reports
// how much was actually consumed (less than requested at the list ends).
type ScrollController interface {
	ScrollBy(delta float64) float64
}

// ScrollFunc adapts a plain function to ScrollController.
type ScrollFunc func(delta float64) float64

func (f ScrollFunc) ScrollBy(delta float64) float64 { return f(delta) }
