package tui

import (
	"log/slog"

	"todoflex/internal/reorder"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) listWidth() int {
	if w := m.detailWidth(); w > 0 {
		return m.width - w
	}
	return m.width
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m, nil
	}
	y := msg.Y - headerHeight

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			if m.engine.Dragging() {
				return m, nil
			}
			d := 1.0
			if msg.Button == tea.MouseButtonWheelUp {
				d = -1
			}
			m.scroll.scrollBy(d, m.rows().maxScroll(m.listHeight()))
			return m, nil
		case tea.MouseButtonLeft:
			if m.engine.Dragging() || msg.X >= m.listWidth() || y >= m.listHeight() {
				return m, nil
			}
			idx, ok := m.rows().rowAt(y, m.scroll.top())
			if !ok {
				return m, nil
			}
			items := m.engine.Items()
			m.selected = idx
			m.selectID = items[idx].ID
			m.gesture = gesture{armed: true, index: idx, key: items[idx].ID, lastY: msg.Y}
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.gesture.armed {
			return m, nil
		}
		if !m.engine.Dragging() {
			if !m.engine.Start(m.gesture.index, m.gesture.key) {
				m.gesture.armed = false
				return m, nil
			}
			slog.Info("drag start", "task", m.gesture.key, "index", m.gesture.index, "date", m.date)
		}
		delta := msg.Y - m.gesture.lastY
		m.gesture.lastY = msg.Y
		return m.moveDragged(float64(delta))

	case tea.MouseActionRelease:
		if !m.gesture.armed {
			return m, nil
		}
		m.gesture.armed = false
		if m.engine.Dragging() {
			return m.endDrag()
		}
	}
	return m, nil
}

// moveDragged feeds a vertical delta to the engine against the current
// viewport and schedules any auto-scroll it asks for.
func (m appModel) moveDragged(delta float64) (tea.Model, tea.Cmd) {
	res := m.engine.Move(delta, m.rows().viewport(m.scroll.top(), m.listHeight()))
	if len(res.Swaps) > 0 {
		m.selected = m.list.snap.Session.Index
		slog.Debug("drag swap", "task", m.gesture.key, "swaps", len(res.Swaps), "index", m.selected)
	}
	if res.Scroll != nil && !m.scrollPending {
		m.scrollPending = true
		return m, scheduleScroll(*res.Scroll, m.scrollInterval())
	}
	return m, nil
}

// applyAutoScroll runs a scheduled scroll. Requests from a drag that has since
// ended are dropped without scrolling. While the drag is held in an edge zone
// the move is re-evaluated with a zero delta, which keeps the scroll going.
func (m appModel) applyAutoScroll(req reorder.ScrollRequest) (tea.Model, tea.Cmd) {
	m.scrollPending = false
	snap := m.engine.Snapshot()
	if !snap.Session.Active || snap.Session.ID != req.Session {
		slog.Debug("drop stale scroll", "session", req.Session)
		return m, nil
	}

	before := m.scroll.pos
	limit := m.rows().maxScroll(m.listHeight())
	m.engine.Scroll(reorder.ScrollFunc(func(d float64) float64 {
		return m.scroll.scrollBy(d, limit)
	}), req)
	if m.scroll.pos == before {
		// Pinned at a content bound; the next motion event restarts it.
		return m, nil
	}
	return m.moveDragged(0)
}

func (m appModel) endDrag() (tea.Model, tea.Cmd) {
	key := m.list.snap.Session.Key
	if !m.engine.End() {
		return m, nil
	}
	m.selectID = key
	order := m.commit.take()
	slog.Info("drag commit", "task", key, "index", m.selected, "date", m.date)
	m.scrollToSelection()
	if len(order) == 0 {
		return m, nil
	}
	return m, savePrioritiesCmd(m.store, order)
}

// cancelDrag abandons the drag without saving. Swaps already applied stay in
// the working order; only a reload deferred by the drag replaces it.
func (m appModel) cancelDrag() (tea.Model, tea.Cmd) {
	sess := m.list.snap.Session
	m.gesture.armed = false
	m.engine.Cancel()
	key := sess.Key
	m.selectID = key
	m.selected = sess.Index
	slog.Info("drag cancel", "task", key, "date", m.date)
	m.setStatus("Move cancelled")
	if m.reloadPending {
		return m, loadTasksCmd(m.store, m.date)
	}
	return m, nil
}

// keyboardMove swaps the selected row with its neighbor by running a short
// synthetic drag through the engine.
func (m appModel) keyboardMove(dir int) (tea.Model, tea.Cmd) {
	items := m.engine.Items()
	from := m.selected
	to := from + dir
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return m, nil
	}
	l := m.rows()
	if !m.engine.Start(from, items[from].ID) {
		return m, nil
	}
	// Half of each row plus a bit puts the dragged center past the neighbor's.
	delta := float64(l.sizes[from]+l.sizes[to])/2 + 0.5
	if dir < 0 {
		delta = -delta
	}
	m.engine.Move(delta, l.fullViewport())
	m.selected = m.list.snap.Session.Index
	return m.endDrag()
}
