package format

import (
	"bytes"
	"strings"
	"testing"
)

type textPayload string

func (p textPayload) Text() string { return string(p) + "\n" }

func TestWrite_TextUnwrapsEnvelopeAndAppendsHints(t *testing.T) {
	var buf bytes.Buffer
	env := map[string]any{"data": textPayload("hello"), "_hints": []string{"try --help"}}
	if err := Write(&buf, env, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := buf.String(), "hello\nhint: try --help\n"; got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestWrite_TextFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": map[string]int{"n": 1}}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"n": 1`) {
		t.Fatalf("expected indented JSON fallback; got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
