package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The list must stay readable on light and dark backgrounds, so colors are
// adaptive and "faint" is only applied on dark terminals.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg   lipgloss.TerminalColor = ac("240", "245")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")
	colorDragBg     lipgloss.TerminalColor = ac("153", "24")
	colorDragFg     lipgloss.TerminalColor = ac("232", "255")
	colorDoneFg     lipgloss.TerminalColor = ac("246", "241")
	colorErrorFg    lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleRow(selected bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	if selected {
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}
	return st
}

func styleDragged() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorDragBg).Foreground(colorDragFg).Bold(true)
}

func styleDateChip(selected, today bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorChromeFg)
	if today {
		st = st.Underline(true)
	}
	if selected {
		st = st.Background(colorAccent).Foreground(colorAccentFg).Bold(true)
	}
	return st
}

func styleDone() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorDoneFg).Strikethrough(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

// applyColorProfilePreference sets the color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR/CLICOLOR_FORCE, which can disable
// colors in a full-screen app. Only NO_COLOR is honored here; otherwise the
// terminal's reported capabilities win, upgraded by TERM/COLORTERM hints.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) TODOFLEX_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TODOFLEX_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
