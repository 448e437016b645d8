package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads with a human-readable rendering.
type Texter interface {
	Text() string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText renders a payload for humans. Envelopes ({"data": ...}) are
// unwrapped; hints go after the data, one per line. Payloads without a text
// form fall back to indented JSON.
func WriteText(w io.Writer, v any) error {
	var hints []string
	if env, ok := v.(map[string]any); ok {
		if h, ok := env["_hints"].([]string); ok {
			hints = h
		}
		if d, ok := env["data"]; ok {
			v = d
		}
	}

	t, ok := v.(Texter)
	if !ok {
		if err := WriteJSON(w, v, true); err != nil {
			return err
		}
	} else if s := strings.TrimRight(t.Text(), "\n"); s != "" {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	for _, h := range hints {
		if _, err := fmt.Fprintln(w, "hint: "+h); err != nil {
			return err
		}
	}
	return nil
}
