package tui

import (
	"errors"
	"log/slog"
	"time"

	"todoflex/internal/model"
	"todoflex/internal/reorder"
	"todoflex/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const headerHeight = 2

// listState is shared between the model copies bubbletea passes around. The
// engine subscription marks it dirty whenever the order changes.
type listState struct {
	snap   reorder.Snapshot[string]
	layout listLayout
	dirty  bool
}

// commitBox receives the order handed over by the engine when a drag ends.
type commitBox struct {
	order []model.Task
}

func (c *commitBox) take() []model.Task {
	o := c.order
	c.order = nil
	return o
}

// gesture tracks a mouse press that may turn into a drag.
type gesture struct {
	armed bool
	index int
	key   string
	lastY int
}

type appModel struct {
	store store.Store
	cfg   store.TUIConfig

	keys keyMap
	help help.Model

	width  int
	height int

	date       string
	selected   int
	selectID   string
	showDetail bool

	engine *reorder.Engine[model.Task, string]
	list   *listState
	commit *commitBox

	scroll        scroller
	gesture       gesture
	scrollPending bool
	reloadPending bool

	form *addForm

	status    string
	statusErr bool

	lastModTime time.Time
}

func newAppModel(s store.Store, cfg store.TUIConfig, st *store.TUIState) appModel {
	m := appModel{
		store:  s,
		cfg:    cfg,
		keys:   defaultKeyMap(),
		help:   help.New(),
		date:   model.Today(),
		list:   &listState{dirty: true},
		commit: &commitBox{},
	}
	if st != nil {
		if model.ValidDate(st.SelectedDate) {
			m.date = st.SelectedDate
		}
		m.selectID = st.SelectedTaskID
		m.showDetail = st.ShowDetail
	}

	auto := cfg.AutoScroll == nil || *cfg.AutoScroll
	box := m.commit
	m.engine = reorder.New(nil, model.Task.Key, reorder.Options[model.Task]{
		AutoScrollEnabled: auto,
		AutoScroll:        reorder.AutoScroll{EdgeWidth: cfg.EdgeRows, MaxVelocity: cfg.MaxScrollRows},
		OnCommit:          func(order []model.Task) { box.order = order },
	})
	ls := m.list
	m.engine.Subscribe(func(snap reorder.Snapshot[string]) {
		ls.snap = snap
		ls.dirty = true
	})
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(loadTasksCmd(m.store, m.date), tickReload())
}

func (m *appModel) rows() listLayout {
	if m.list.dirty {
		m.list.layout = layoutRows(m.engine.Items())
		m.list.dirty = false
	}
	return m.list.layout
}

func (m appModel) listHeight() int {
	h := m.height - headerHeight - m.footerHeight()
	if h < 1 {
		return 1
	}
	return h
}

func (m appModel) footerHeight() int {
	if !m.help.ShowAll {
		return 2
	}
	rows := 0
	for _, col := range m.keys.FullHelp() {
		rows = max(rows, len(col))
	}
	return 1 + rows
}

func (m appModel) scrollInterval() time.Duration {
	return time.Duration(m.cfg.ScrollIntervalMs) * time.Millisecond
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m appModel) selectedTask() (model.Task, bool) {
	items := m.engine.Items()
	if m.selected < 0 || m.selected >= len(items) {
		return model.Task{}, false
	}
	return items[m.selected], true
}

func (m *appModel) clampSelection() {
	n := m.engine.Len()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *appModel) scrollToSelection() {
	m.scroll.ensureVisible(m.rows(), m.selected, m.listHeight())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll.clamp(m.rows().maxScroll(m.listHeight()))
		return m, nil

	case tasksLoadedMsg:
		return m.applyLoaded(msg)

	case prioritiesSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, loadTasksCmd(m.store, m.date)
		}
		m.lastModTime = msg.modTime
		m.setStatus("Order saved")
		if m.reloadPending {
			return m, loadTasksCmd(m.store, m.date)
		}
		return m, nil

	case taskMutatedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.selectID != "" {
			m.selectID = msg.selectID
		}
		m.setStatus(msg.status)
		return m, loadTasksCmd(m.store, m.date)

	case reloadTickMsg:
		if !m.engine.Dragging() && m.store.ModTime().After(m.lastModTime) {
			return m, tea.Batch(loadTasksCmd(m.store, m.date), tickReload())
		}
		return m, tickReload()

	case autoScrollMsg:
		return m.applyAutoScroll(msg.req)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) applyLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.date != m.date {
		return m, nil
	}
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	if err := m.engine.SetItems(msg.tasks); err != nil {
		if errors.Is(err, reorder.ErrDragActive) {
			// Picked up again once the drag ends.
			m.reloadPending = true
			return m, nil
		}
		m.setError(err)
		return m, nil
	}
	m.reloadPending = false
	m.lastModTime = msg.modTime

	if m.selectID != "" {
		for i, t := range msg.tasks {
			if t.ID == m.selectID {
				m.selected = i
				break
			}
		}
	}
	m.clampSelection()
	if t, ok := m.selectedTask(); ok {
		m.selectID = t.ID
	}
	m.scroll.clamp(m.rows().maxScroll(m.listHeight()))
	m.scrollToSelection()
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.engine.Dragging() {
		switch {
		case key.Matches(msg, m.keys.cancel):
			return m.cancelDrag()
		case key.Matches(msg, m.keys.quit):
			m.engine.Cancel()
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		m.scroll.clamp(m.rows().maxScroll(m.listHeight()))
		return m, nil
	case key.Matches(msg, m.keys.up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		return m.keyboardMove(-1)
	case key.Matches(msg, m.keys.moveDown):
		return m.keyboardMove(1)
	case key.Matches(msg, m.keys.prevDay):
		return m.changeDate(shiftDate(m.date, -1))
	case key.Matches(msg, m.keys.nextDay):
		return m.changeDate(shiftDate(m.date, 1))
	case key.Matches(msg, m.keys.prevWeek):
		return m.changeDate(shiftDate(m.date, -stripDays))
	case key.Matches(msg, m.keys.nextWeek):
		return m.changeDate(shiftDate(m.date, stripDays))
	case key.Matches(msg, m.keys.today):
		return m.changeDate(model.Today())
	case key.Matches(msg, m.keys.add):
		m.form = newAddForm(m.date)
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.selectedTask(); ok {
			return m, setDoneCmd(m.store, t.ID, !t.Done)
		}
	case key.Matches(msg, m.keys.del):
		if t, ok := m.selectedTask(); ok {
			slog.Info("delete task", "task", t.ID)
			return m, deleteTaskCmd(m.store, t.ID)
		}
	case key.Matches(msg, m.keys.detail):
		m.showDetail = !m.showDetail
		return m, nil
	case key.Matches(msg, m.keys.auto):
		on := !m.engine.AutoScrollEnabled()
		m.engine.SetAutoScrollEnabled(on)
		if on {
			m.setStatus("Auto-scroll on")
		} else {
			m.setStatus("Auto-scroll off")
		}
		return m, nil
	case key.Matches(msg, m.keys.reload):
		return m, loadTasksCmd(m.store, m.date)
	}
	return m, nil
}

func (m *appModel) moveSelection(d int) {
	m.selected += d
	m.clampSelection()
	if t, ok := m.selectedTask(); ok {
		m.selectID = t.ID
	}
	m.scrollToSelection()
}

func (m appModel) changeDate(date string) (tea.Model, tea.Cmd) {
	if date == m.date {
		return m, nil
	}
	m.date = date
	m.selected = 0
	m.selectID = ""
	m.scroll = scroller{}
	return m, loadTasksCmd(m.store, m.date)
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res, cmd := m.form.update(msg)
	switch res {
	case formCancel:
		m.form = nil
		return m, nil
	case formSubmit:
		t, err := m.form.task()
		m.form = nil
		if err != nil {
			m.setError(err)
			return m, nil
		}
		return m, addTaskCmd(m.store, t)
	}
	return m, cmd
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	st := &store.TUIState{SelectedDate: m.date, SelectedTaskID: m.selectID, ShowDetail: m.showDetail}
	if err := m.store.SaveTUIState(st); err != nil {
		slog.Warn("save tui state", "err", err)
	}
	return m, tea.Quit
}
