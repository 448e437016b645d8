package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type GlobalConfig struct {
	// DefaultDir is the task store directory used when --dir is not given.
	// When empty, <config dir>/data is used.
	DefaultDir string `json:"defaultDir,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// AutoScroll toggles edge auto-scroll while dragging (default on).
	AutoScroll *bool `json:"autoScroll,omitempty"`
	// EdgeRows is the height of the top/bottom edge zones, in rows.
	EdgeRows float64 `json:"edgeRows,omitempty"`
	// MaxScrollRows is the scroll distance per tick at the very edge.
	MaxScrollRows float64 `json:"maxScrollRows,omitempty"`
	// ScrollIntervalMs is the delay before a scheduled scroll is applied.
	ScrollIntervalMs int `json:"scrollIntervalMs,omitempty"`
	// Glyphs selects the glyph set ("unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

const (
	DefaultEdgeRows         = 2.0
	DefaultMaxScrollRows    = 1.0
	DefaultScrollIntervalMs = 60
)

// Resolved returns a copy with defaults filled in. Safe on nil.
func (c *TUIConfig) Resolved() TUIConfig {
	out := TUIConfig{}
	if c != nil {
		out = *c
	}
	if out.AutoScroll == nil {
		on := true
		out.AutoScroll = &on
	}
	if out.EdgeRows <= 0 {
		out.EdgeRows = DefaultEdgeRows
	}
	if out.MaxScrollRows <= 0 {
		out.MaxScrollRows = DefaultMaxScrollRows
	}
	if out.ScrollIntervalMs <= 0 {
		out.ScrollIntervalMs = DefaultScrollIntervalMs
	}
	if strings.TrimSpace(out.Glyphs) == "" {
		out.Glyphs = "unicode"
	}
	return out
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.todoflex).
	if v := strings.TrimSpace(os.Getenv("TODOFLEX_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todoflex"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so the CLI and a running TUI never see a torn file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// DataDir resolves the task store directory from config.
func DataDir(cfg *GlobalConfig) (string, error) {
	if cfg != nil && strings.TrimSpace(cfg.DefaultDir) != "" {
		return filepath.Clean(strings.TrimSpace(cfg.DefaultDir)), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// ConfigKeys lists the keys accepted by SetConfigValue.
var ConfigKeys = []string{
	"defaultDir",
	"tui.autoScroll",
	"tui.edgeRows",
	"tui.maxScrollRows",
	"tui.scrollIntervalMs",
	"tui.glyphs",
}

// SetConfigValue parses value for key and stores it on cfg.
func SetConfigValue(cfg *GlobalConfig, key, value string) error {
	value = strings.TrimSpace(value)
	if key == "defaultDir" {
		cfg.DefaultDir = value
		return nil
	}
	if cfg.TUI == nil {
		cfg.TUI = &TUIConfig{}
	}
	switch key {
	case "tui.autoScroll":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.TUI.AutoScroll = &on
	case "tui.edgeRows", "tui.maxScrollRows":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if f <= 0 {
			return fmt.Errorf("%s: must be > 0", key)
		}
		if key == "tui.edgeRows" {
			cfg.TUI.EdgeRows = f
		} else {
			cfg.TUI.MaxScrollRows = f
		}
	case "tui.scrollIntervalMs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n <= 0 {
			return fmt.Errorf("%s: must be > 0", key)
		}
		cfg.TUI.ScrollIntervalMs = n
	case "tui.glyphs":
		switch value {
		case "unicode", "ascii":
			cfg.TUI.Glyphs = value
		default:
			return fmt.Errorf("%s: expected unicode|ascii", key)
		}
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}
