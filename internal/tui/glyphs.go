package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so affordances come in a Unicode
// and an ASCII set for terminals that render some glyphs poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphHandle() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "⠿"
}

func glyphCheckbox(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "☑"
	}
	return "☐"
}

func glyphArrowLeft() string {
	if glyphs() == glyphSetASCII {
		return "<"
	}
	return "‹"
}

func glyphArrowRight() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
