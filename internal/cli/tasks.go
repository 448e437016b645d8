package cli

import (
	"errors"
	"fmt"
	"strings"

	"todoflex/internal/model"

	"github.com/spf13/cobra"
)

// taskList is the text-renderable form of a day's tasks.
type taskList []model.Task

func (l taskList) Text() string {
	if len(l) == 0 {
		return "(no tasks)"
	}
	var b strings.Builder
	for i, t := range l {
		b.WriteString(taskLine(i, t))
		b.WriteByte('\n')
	}
	return b.String()
}

type taskView model.Task

func (v taskView) Text() string {
	t := model.Task(v)
	lines := []string{taskLine(t.Priority, t), "  date: " + t.Date}
	if d := strings.TrimSpace(t.Description); d != "" {
		lines = append(lines, "", d)
	}
	return strings.Join(lines, "\n")
}

type dateList []string

func (l dateList) Text() string { return strings.Join(l, "\n") }

func taskLine(pos int, t model.Task) string {
	check := "[ ]"
	if t.Done {
		check = "[x]"
	}
	tr := t.TimeRange()
	if tr != "" {
		tr = "  " + tr
	}
	return fmt.Sprintf("%3d. %s %s%s  (%s)", pos+1, check, t.Title, tr, t.ID)
}

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Task commands",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksDatesCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's tasks in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := resolveDate(date)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := s.ListTasks(cmd.Context(), d)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": taskList(tasks),
				"meta": map[string]any{"date": d, "count": len(tasks)},
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD; default today)")
	return cmd
}

func newTasksDatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List days that have tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dates, err := s.ListDates(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": dateList(dates)})
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var t model.Task
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the end of a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t.Title = strings.Join(args, " ")
			d, err := resolveDate(t.Date)
			if err != nil {
				return writeErr(cmd, err)
			}
			t.Date = d
			created, err := s.AddTask(cmd.Context(), t)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   taskView(created),
				"_hints": []string{"todoflex tasks move " + created.ID + " --to 0"},
			})
		},
	}
	cmd.Flags().StringVar(&t.Description, "desc", "", "Description (markdown)")
	cmd.Flags().StringVar(&t.Date, "date", "", "Day (YYYY-MM-DD; default today)")
	cmd.Flags().StringVar(&t.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&t.EndTime, "end", "", "End time (HH:MM)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := s.GetTask(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, storeErr("task", args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": taskView(t)})
		},
	}
}

func newTasksDoneCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task done (or not done with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := s.SetDone(cmd.Context(), args[0], !undo)
			if err != nil {
				return writeErr(cmd, storeErr("task", args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": taskView(t)})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as not done")
	return cmd
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteTask(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, storeErr("task", args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	to := -1
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to a position within its day (0 = top)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to < 0 {
				return writeErr(cmd, errors.New("missing --to (0-based position)"))
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := s.MoveTask(cmd.Context(), args[0], to)
			if err != nil {
				return writeErr(cmd, storeErr("task", args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": taskList(tasks)})
		},
	}
	cmd.Flags().IntVar(&to, "to", -1, "Target position (0-based)")
	return cmd
}

func resolveDate(d string) (string, error) {
	d = strings.TrimSpace(d)
	switch d {
	case "", "today":
		return model.Today(), nil
	}
	if !model.ValidDate(d) {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", d)
	}
	return d, nil
}
