package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState is small UI state restored on relaunch. It lives next to the task
// database so it is scoped per data dir. Missing or corrupt files load as the
// zero state.
type TUIState struct {
	Version int `json:"version"`

	// SelectedDate is the day shown in the list (YYYY-MM-DD).
	SelectedDate string `json:"selectedDate,omitempty"`
	// SelectedTaskID is the highlighted row.
	SelectedTaskID string `json:"selectedTaskId,omitempty"`

	ShowDetail bool `json:"showDetail,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, ".tui_state-*.tmp", s.tuiStatePath(), b, 0o644)
}
