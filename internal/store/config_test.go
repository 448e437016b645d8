package store

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadConfig_RoundTripsTUIPrefs(t *testing.T) {
	t.Setenv("TODOFLEX_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig (missing file): %v", err)
	}
	for k, v := range map[string]string{
		"tui.autoScroll":       "false",
		"tui.edgeRows":         "3",
		"tui.scrollIntervalMs": "40",
		"tui.glyphs":           "ascii",
	} {
		if err := SetConfigValue(cfg, k, v); err != nil {
			t.Fatalf("SetConfigValue(%s): %v", k, err)
		}
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	r := got.TUI.Resolved()
	if *r.AutoScroll || r.EdgeRows != 3 || r.ScrollIntervalMs != 40 || r.Glyphs != "ascii" {
		t.Fatalf("unexpected resolved config: %+v", r)
	}
	if r.MaxScrollRows != DefaultMaxScrollRows {
		t.Fatalf("expected default max scroll rows; got %v", r.MaxScrollRows)
	}
}

func TestSetConfigValue_RejectsUnknownAndInvalid(t *testing.T) {
	cfg := &GlobalConfig{}
	if err := SetConfigValue(cfg, "tui.nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if err := SetConfigValue(cfg, "tui.edgeRows", "-1"); err == nil {
		t.Fatalf("expected non-positive error")
	}
	if err := SetConfigValue(cfg, "tui.autoScroll", "maybe"); err == nil {
		t.Fatalf("expected bool parse error")
	}
}

func TestDataDir_DefaultsUnderConfigDir(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TODOFLEX_CONFIG_DIR", cfgDir)

	got, err := DataDir(&GlobalConfig{})
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(cfgDir, "data"); got != want {
		t.Fatalf("expected %q; got %q", want, got)
	}
	got, err = DataDir(&GlobalConfig{DefaultDir: "/tmp/tasks/"})
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if got != "/tmp/tasks" {
		t.Fatalf("expected configured dir; got %q", got)
	}
}
