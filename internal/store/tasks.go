package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"todoflex/internal/model"
)

const taskColumns = `id, title, description, date, priority, done, start_time, end_time, created_at_unixms, updated_at_unixms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (model.Task, error) {
	var t model.Task
	var done int
	var createdMs, updatedMs int64
	if err := r.Scan(&t.ID, &t.Title, &t.Description, &t.Date, &t.Priority, &done, &t.StartTime, &t.EndTime, &createdMs, &updatedMs); err != nil {
		return model.Task{}, err
	}
	t.Done = done != 0
	t.CreatedAt = time.UnixMilli(createdMs).UTC()
	t.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return t, nil
}

// ListTasks returns the tasks planned for date in display order:
// priority, then creation time, then id.
func (s Store) ListTasks(ctx context.Context, date string) ([]model.Task, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks
		WHERE date = ?
		ORDER BY priority ASC, created_at_unixms ASC, id ASC`, strings.TrimSpace(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListDates returns every date that has at least one task, ascending.
func (s Store) ListDates(ctx context.Context) ([]string, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT date FROM tasks ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()
	return getTask(ctx, db, id)
}

func getTask(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, id string) (model.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, strings.TrimSpace(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

// AddTask inserts t with a fresh id, appended to the end of its day.
func (s Store) AddTask(ctx context.Context, t model.Task) (model.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return model.Task{}, errors.New("task title is empty")
	}
	if strings.TrimSpace(t.Date) == "" {
		t.Date = model.Today()
	}
	if !model.ValidDate(t.Date) {
		return model.Task{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", t.Date)
	}
	if !model.ValidTime(t.StartTime) || !model.ValidTime(t.EndTime) {
		return model.Task{}, fmt.Errorf("invalid time %q-%q (want HH:MM)", t.StartTime, t.EndTime)
	}

	db, err := s.open(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	id, err := newRandomID("task")
	if err != nil {
		return model.Task{}, err
	}
	t.ID = id

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var maxPrio sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(priority) FROM tasks WHERE date = ?`, t.Date).Scan(&maxPrio); err != nil {
		return model.Task{}, err
	}
	t.Priority = 0
	if maxPrio.Valid {
		t.Priority = int(maxPrio.Int64) + 1
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(`+taskColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Date, t.Priority, boolToInt(t.Done),
		strings.TrimSpace(t.StartTime), strings.TrimSpace(t.EndTime),
		now.UnixMilli(), now.UnixMilli(),
	); err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// UpdateTask overwrites the editable fields of an existing task.
func (s Store) UpdateTask(ctx context.Context, t model.Task) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE tasks SET
		title = ?, description = ?, date = ?, priority = ?, done = ?,
		start_time = ?, end_time = ?, updated_at_unixms = ?
		WHERE id = ?`,
		strings.TrimSpace(t.Title), t.Description, t.Date, t.Priority, boolToInt(t.Done),
		strings.TrimSpace(t.StartTime), strings.TrimSpace(t.EndTime), time.Now().UTC().UnixMilli(),
		t.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res, t.ID)
}

func (s Store) SetDone(ctx context.Context, id string, done bool) (model.Task, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `UPDATE tasks SET done = ?, updated_at_unixms = ? WHERE id = ?`,
		boolToInt(done), time.Now().UTC().UnixMilli(), strings.TrimSpace(id))
	if err != nil {
		return model.Task{}, err
	}
	if err := expectOneRow(res, id); err != nil {
		return model.Task{}, err
	}
	return getTask(ctx, db, id)
}

func (s Store) DeleteTask(ctx context.Context, id string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}
