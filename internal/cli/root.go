package cli

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"todoflex/internal/format"
	"todoflex/internal/store"
	"todoflex/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogFile    string

	logCloser io.Closer
	logLevel  slog.Level
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todoflex",
		Short:         "Day planner with drag-to-reorder priorities (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI (drag tasks with the mouse to reorder)
  todoflex

  # Scriptable commands
  todoflex tasks add "Write report" --start 09:00 --end 10:30
  todoflex tasks list --format text
  todoflex tasks move task-abcd1234 --to 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.LogFile == "" {
			return nil
		}
		// LogToFile points the standard logger at the file; slog's default
		// handler writes through it.
		f, err := tea.LogToFile(app.LogFile, "todoflex")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		app.logCloser = f
		app.logLevel = slog.SetLogLoggerLevel(slog.LevelDebug)
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logCloser != nil {
			slog.SetLogLoggerLevel(app.logLevel)
			log.SetOutput(os.Stderr)
			_ = app.logCloser.Close()
			app.logCloser = nil
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TODOFLEX_DIR", ""), "Path to the task store dir (default: config defaultDir or ~/.todoflex/data)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODOFLEX_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("TODOFLEX_LOG", ""), "Append debug logs to this file")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := openStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.logCloser == nil {
		// Anything written to the terminal would corrupt the alt screen.
		log.SetOutput(io.Discard)
	}
	slog.Info("starting tui", "dir", s.Dir)
	return tui.Run(s, cfg.TUI.Resolved())
}

func openStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		cfg, err := store.LoadConfig()
		if err != nil {
			return store.Store{}, err
		}
		dir, err = store.DataDir(cfg)
		if err != nil {
			return store.Store{}, err
		}
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	slog.Debug("open store", "dir", dir)
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
