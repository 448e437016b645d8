package tui

import (
	"math"
	"strings"

	"todoflex/internal/model"
	"todoflex/internal/reorder"
)

const (
	rowLines     = 2
	rowLinesDesc = 3
)

func rowHeight(t model.Task) int {
	if strings.TrimSpace(t.Description) != "" {
		return rowLinesDesc
	}
	return rowLines
}

// listLayout is the content-space geometry of the day's rows, top to bottom.
type listLayout struct {
	offsets []int
	sizes   []int
	total   int
}

func layoutRows(tasks []model.Task) listLayout {
	l := listLayout{offsets: make([]int, len(tasks)), sizes: make([]int, len(tasks))}
	for i, t := range tasks {
		l.offsets[i] = l.total
		l.sizes[i] = rowHeight(t)
		l.total += l.sizes[i]
	}
	return l
}

func (l listLayout) maxScroll(height int) int {
	if l.total <= height {
		return 0
	}
	return l.total - height
}

// viewport snapshots the rows that intersect the visible window. Offsets are
// screen rows relative to the top of the list area.
func (l listLayout) viewport(scrollTop, height int) reorder.Viewport {
	vp := reorder.Viewport{Start: 0, End: float64(height)}
	for i := range l.sizes {
		top := l.offsets[i] - scrollTop
		if top+l.sizes[i] <= 0 {
			continue
		}
		if top >= height {
			break
		}
		vp.Items = append(vp.Items, reorder.VisibleItem{
			Index:  i,
			Offset: float64(top),
			Size:   float64(l.sizes[i]),
		})
	}
	return vp
}

// fullViewport lays out every row as visible. Keyboard moves use it so the
// neighbor is always present regardless of scroll.
func (l listLayout) fullViewport() reorder.Viewport {
	vp := reorder.Viewport{Start: 0, End: float64(l.total)}
	for i := range l.sizes {
		vp.Items = append(vp.Items, reorder.VisibleItem{Index: i, Offset: float64(l.offsets[i]), Size: float64(l.sizes[i])})
	}
	return vp
}

// rowAt maps a list-relative screen row to a row index.
func (l listLayout) rowAt(y, scrollTop int) (int, bool) {
	cy := y + scrollTop
	if y < 0 || cy < 0 {
		return 0, false
	}
	for i := range l.sizes {
		if cy >= l.offsets[i] && cy < l.offsets[i]+l.sizes[i] {
			return i, true
		}
	}
	return 0, false
}

// scroller is the list's scroll position. pos may be fractional; only whole
// rows are rendered or reported as consumed.
type scroller struct {
	pos float64
}

func (s scroller) top() int { return int(math.Floor(s.pos)) }

// scrollBy moves within [0, max] and returns the whole rows actually scrolled.
func (s *scroller) scrollBy(delta float64, max int) float64 {
	before := s.top()
	s.pos += delta
	if s.pos < 0 {
		s.pos = 0
	}
	if s.pos > float64(max) {
		s.pos = float64(max)
	}
	return float64(s.top() - before)
}

func (s *scroller) clamp(max int) {
	s.scrollBy(0, max)
}

// ensureVisible scrolls the least amount that brings row i fully into view.
func (s *scroller) ensureVisible(l listLayout, i, height int) {
	if i < 0 || i >= len(l.sizes) || height <= 0 {
		return
	}
	top := s.top()
	switch {
	case l.offsets[i] < top:
		s.pos = float64(l.offsets[i])
	case l.offsets[i]+l.sizes[i] > top+height:
		s.pos = float64(l.offsets[i] + l.sizes[i] - height)
	}
	s.clamp(l.maxScroll(height))
}
