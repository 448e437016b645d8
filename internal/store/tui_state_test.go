package store

import (
	"os"
	"reflect"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}

	// Missing file => default state.
	st0, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{
		Version:        1,
		SelectedDate:   "2026-04-02",
		SelectedTaskID: "task-abcd1234",
		ShowDetail:     true,
	}
	if err := s.SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}

	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestTUIState_CorruptFileLoadsDefault(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	if err := os.WriteFile(s.tuiStatePath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Version != 1 || st.SelectedDate != "" {
		t.Fatalf("expected default state; got %#v", st)
	}
}
