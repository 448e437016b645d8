package tui

import (
	"math"
	"strconv"
	"strings"

	"todoflex/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) detailWidth() int {
	if !m.showDetail || m.width < 70 {
		return 0
	}
	return max(28, m.width/3)
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := renderDateStrip(m.date, m.width) + "\n" + styleMuted().Render(strings.Repeat(glyphHRule(), m.width))

	h := m.listHeight()
	body := m.renderList(m.listWidth(), h)
	if dw := m.detailWidth(); dw > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetail(dw, h))
	}
	if m.form != nil {
		body = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.form.view(m.width-4))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatus(), m.help.View(m.keys))
}

// renderList draws the visible rows. While dragging, the dragged row's slot is
// left as a placeholder and the row itself is drawn on top, displaced by the
// session offset.
func (m appModel) renderList(w, h int) string {
	items := m.engine.Items()
	if len(items) == 0 {
		msg := styleMuted().Render("No tasks for this day. Press a to add one.")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, msg)
	}

	l := m.rows()
	top := m.scroll.top()
	sess := m.list.snap.Session
	lines := fitLines(nil, w, h)
	put := func(y int, rowLines []string) {
		for k, s := range rowLines {
			if yy := y + k; yy >= 0 && yy < h {
				lines[yy] = s
			}
		}
	}

	for i, t := range items {
		y := l.offsets[i] - top
		if y+l.sizes[i] <= 0 {
			continue
		}
		if y >= h {
			break
		}
		if sess.Active && i == sess.Index {
			put(y, placeholderLines(l.sizes[i], w))
			continue
		}
		put(y, renderRow(t, styleRow(i == m.selected), w))
	}
	if sess.Active && sess.Index >= 0 && sess.Index < len(items) {
		y := l.offsets[sess.Index] - top + int(math.Round(sess.Offset))
		put(y, renderRow(items[sess.Index], styleDragged(), w))
	}
	return strings.Join(lines, "\n")
}

func renderRow(t model.Task, st lipgloss.Style, w int) []string {
	title := t.Title
	titleSt := st
	if t.Done {
		titleSt = titleSt.Inherit(styleDone())
	}
	prefix := " " + glyphHandle() + " " + glyphCheckbox(t.Done) + " "
	indent := strings.Repeat(" ", lipgloss.Width(prefix))

	out := []string{
		st.Render(prefix) + titleSt.Render(padOrCutANSI(truncateToWidth(title, w-lipgloss.Width(prefix)), w-lipgloss.Width(prefix))),
		st.Render(padOrCutANSI(indent+t.TimeRange(), w)),
	}
	if rowHeight(t) == rowLinesDesc {
		first, _, _ := strings.Cut(strings.TrimSpace(t.Description), "\n")
		out = append(out, st.Inherit(styleMuted()).Render(padOrCutANSI(indent+truncateToWidth(first, w-len(indent)), w)))
	}
	return out
}

func placeholderLines(n, w int) []string {
	out := make([]string, n)
	for i := range out {
		if i == 0 {
			out[i] = styleMuted().Render(padOrCutANSI("   "+strings.Repeat(glyphHRule(), max(0, w-6)), w))
		} else {
			out[i] = strings.Repeat(" ", w)
		}
	}
	return out
}

func (m appModel) renderDetail(w, h int) string {
	inner := w - 2
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(colorMuted).
		PaddingLeft(1)

	t, ok := m.selectedTask()
	if !ok {
		return pane.Render(strings.Join(fitLines([]string{styleMuted().Render("Nothing selected.")}, inner, h), "\n"))
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Render(truncateToWidth(t.Title, inner))}
	meta := t.Date
	if tr := t.TimeRange(); tr != "" {
		meta += "  " + tr
	}
	if t.Done {
		meta += "  done"
	}
	lines = append(lines, styleMuted().Render(meta), "")
	if md := renderMarkdown(t.Description, inner); md != "" {
		lines = append(lines, strings.Split(md, "\n")...)
	} else {
		lines = append(lines, styleMuted().Render("No notes."))
	}
	return pane.Render(strings.Join(fitLines(lines, inner, h), "\n"))
}

func (m appModel) renderStatus() string {
	left := m.status
	st := styleMuted()
	if m.statusErr {
		st = styleError()
	}
	if m.engine.Dragging() {
		left = "Moving" + glyphEllipsis() + " release to drop, esc to cancel"
		st = lipgloss.NewStyle().Foreground(colorAccent)
	}

	var right string
	switch n := m.engine.Len(); n {
	case 0:
		right = "no tasks"
	case 1:
		right = "1 task"
	default:
		right = strconv.Itoa(n) + " tasks"
	}
	if !m.engine.AutoScrollEnabled() {
		right = "auto-scroll off  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return padOrCutANSI(st.Render(truncateToWidth(left, m.width)), m.width)
	}
	return st.Render(left) + strings.Repeat(" ", gap) + styleMuted().Render(right)
}
