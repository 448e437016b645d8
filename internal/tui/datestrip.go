package tui

import (
	"strings"
	"time"

	"todoflex/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const stripDays = 7

func shiftDate(date string, days int) string {
	d, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return model.Today()
	}
	return d.AddDate(0, 0, days).Format(model.DateLayout)
}

// renderDateStrip draws a week of day chips centered on the selected date,
// with the month on the left.
func renderDateStrip(selected string, width int) string {
	today := model.Today()
	sel, err := time.ParseInLocation(model.DateLayout, selected, time.Local)
	if err != nil {
		sel = time.Now()
	}

	month := lipgloss.NewStyle().Bold(true).Render(sel.Format("January 2006"))
	chips := []string{styleMuted().Render(glyphArrowLeft())}
	for i := -stripDays / 2; i <= stripDays/2; i++ {
		d := sel.AddDate(0, 0, i)
		ds := d.Format(model.DateLayout)
		chips = append(chips, styleDateChip(ds == selected, ds == today).Render(d.Format("Mon 02")))
	}
	chips = append(chips, styleMuted().Render(glyphArrowRight()))
	strip := strings.Join(chips, " ")

	gap := width - xansi.StringWidth(month) - xansi.StringWidth(strip)
	if gap < 1 {
		return padOrCutANSI(strip, width)
	}
	return month + strings.Repeat(" ", gap) + strip
}
