package tui

import (
	"log/slog"

	"todoflex/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive planner on s. Mouse cell motion is required so
// held-button drags are reported.
func Run(s store.Store, cfg store.TUIConfig) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(cfg.Glyphs)

	st, err := s.LoadTUIState()
	if err != nil {
		slog.Warn("load tui state", "err", err)
		st = nil
	}
	m := newAppModel(s, cfg, st)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
