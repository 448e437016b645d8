package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(s string, w int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	ell := glyphEllipsis()
	ew := xansi.StringWidth(ell)
	if w <= ew {
		return xansi.Cut(ell, 0, w)
	}
	return xansi.Cut(s, 0, w-ew) + ell
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}

// fitLines pads or cuts a block to exactly h lines of width w.
func fitLines(lines []string, w, h int) []string {
	out := make([]string, h)
	for i := range out {
		if i < len(lines) {
			out[i] = padOrCutANSI(lines[i], w)
		} else {
			out[i] = strings.Repeat(" ", w)
		}
	}
	return out
}
