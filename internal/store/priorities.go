package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"todoflex/internal/model"
	"todoflex/internal/reorder"
)

// SavePriorities persists a total order: each task's position becomes its
// priority. Only rows whose stored priority differs are written. It returns the
// number of rows changed.
func (s Store) SavePriorities(ctx context.Context, tasks []model.Task) (int, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	changed := 0
	for i, t := range tasks {
		var cur int
		err := tx.QueryRowContext(ctx, `SELECT priority FROM tasks WHERE id = ?`, t.ID).Scan(&cur)
		if errors.Is(err, sql.ErrNoRows) {
			// Deleted elsewhere since the list was loaded; the rest of the order still stands.
			continue
		}
		if err != nil {
			return 0, err
		}
		if cur == i {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET priority = ?, updated_at_unixms = ? WHERE id = ?`, i, nowMs, t.ID); err != nil {
			return 0, err
		}
		changed++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return changed, nil
}

// MoveTask moves a task to position `to` within its day and persists the new
// order. It drives the same reorder engine as the TUI: one synthetic drag over
// a unit-height layout where every task is visible.
func (s Store) MoveTask(ctx context.Context, id string, to int) ([]model.Task, error) {
	id = strings.TrimSpace(id)
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasks(ctx, t.Date)
	if err != nil {
		return nil, err
	}
	from := -1
	for i := range tasks {
		if tasks[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if to < 0 {
		to = 0
	}
	if to > len(tasks)-1 {
		to = len(tasks) - 1
	}

	var final []model.Task
	eng := reorder.New(tasks, model.Task.Key, reorder.Options[model.Task]{
		OnCommit: func(order []model.Task) { final = order },
	})
	vp := reorder.Viewport{Start: 0, End: float64(len(tasks))}
	for i := range tasks {
		vp.Items = append(vp.Items, reorder.VisibleItem{Index: i, Offset: float64(i), Size: 1})
	}
	eng.Start(from, id)
	eng.Move(unitDragDelta(to-from), vp)
	eng.End()

	if _, err := s.SavePriorities(ctx, final); err != nil {
		return nil, err
	}
	for i := range final {
		final[i].Priority = i
	}
	return final, nil
}

// unitDragDelta is the drag distance that crosses exactly |steps| unit-height
// neighbors: half a row past the last neighbor's center.
func unitDragDelta(steps int) float64 {
	switch {
	case steps > 0:
		return float64(steps) + 0.5
	case steps < 0:
		return float64(steps) - 0.5
	default:
		return 0
	}
}
