package tui

import (
	"context"
	"log/slog"
	"time"

	"todoflex/internal/model"
	"todoflex/internal/reorder"
	"todoflex/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type reloadTickMsg struct{}

type tasksLoadedMsg struct {
	date    string
	tasks   []model.Task
	modTime time.Time
	err     error
}

type prioritiesSavedMsg struct {
	changed int
	modTime time.Time
	err     error
}

type taskMutatedMsg struct {
	selectID string
	status   string
	err      error
}

// autoScrollMsg delivers a scroll request from the reorder engine after the
// configured delay.
type autoScrollMsg struct {
	req reorder.ScrollRequest
}

const reloadInterval = 750 * time.Millisecond

func tickReload() tea.Cmd {
	return tea.Tick(reloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func scheduleScroll(req reorder.ScrollRequest, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return autoScrollMsg{req: req} })
}

func loadTasksCmd(s store.Store, date string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := s.ListTasks(context.Background(), date)
		return tasksLoadedMsg{date: date, tasks: tasks, modTime: s.ModTime(), err: err}
	}
}

func savePrioritiesCmd(s store.Store, order []model.Task) tea.Cmd {
	return func() tea.Msg {
		n, err := s.SavePriorities(context.Background(), order)
		if err != nil {
			slog.Error("save priorities", "err", err)
		}
		return prioritiesSavedMsg{changed: n, modTime: s.ModTime(), err: err}
	}
}

func addTaskCmd(s store.Store, t model.Task) tea.Cmd {
	return func() tea.Msg {
		created, err := s.AddTask(context.Background(), t)
		if err != nil {
			return taskMutatedMsg{err: err}
		}
		return taskMutatedMsg{selectID: created.ID, status: "Added " + created.Title}
	}
}

func setDoneCmd(s store.Store, id string, done bool) tea.Cmd {
	return func() tea.Msg {
		t, err := s.SetDone(context.Background(), id, done)
		if err != nil {
			return taskMutatedMsg{err: err}
		}
		status := "Reopened " + t.Title
		if t.Done {
			status = "Done: " + t.Title
		}
		return taskMutatedMsg{selectID: t.ID, status: status}
	}
}

func deleteTaskCmd(s store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		if err := s.DeleteTask(context.Background(), id); err != nil {
			return taskMutatedMsg{err: err}
		}
		return taskMutatedMsg{status: "Deleted"}
	}
}
