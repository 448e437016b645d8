package cli

import (
	"strconv"
	"strings"

	"todoflex/internal/store"

	"github.com/spf13/cobra"
)

type configView struct {
	Path    string              `json:"path"`
	DataDir string              `json:"dataDir"`
	TUI     store.TUIConfig     `json:"tui"`
	Raw     *store.GlobalConfig `json:"raw"`
}

func (v configView) Text() string {
	lines := []string{
		"path:                 " + v.Path,
		"dataDir:              " + v.DataDir,
		"tui.autoScroll:       " + strconv.FormatBool(*v.TUI.AutoScroll),
		"tui.edgeRows:         " + strconv.FormatFloat(v.TUI.EdgeRows, 'f', -1, 64),
		"tui.maxScrollRows:    " + strconv.FormatFloat(v.TUI.MaxScrollRows, 'f', -1, 64),
		"tui.scrollIntervalMs: " + strconv.Itoa(v.TUI.ScrollIntervalMs),
		"tui.glyphs:           " + v.TUI.Glyphs,
	}
	return strings.Join(lines, "\n")
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change global settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfigView()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting (" + strings.Join(store.ConfigKeys, ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SetConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			v, err := loadConfigView()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	})
	return cmd
}

func loadConfigView() (configView, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return configView{}, err
	}
	path, err := store.ConfigPath()
	if err != nil {
		return configView{}, err
	}
	dataDir, err := store.DataDir(cfg)
	if err != nil {
		return configView{}, err
	}
	return configView{Path: path, DataDir: dataDir, TUI: cfg.TUI.Resolved(), Raw: cfg}, nil
}
