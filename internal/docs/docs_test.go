package docs

import "testing"

func TestTopicsAreReadable(t *testing.T) {
	topics := Topics()
	if len(topics) < 3 {
		t.Fatalf("expected bundled topics; got %v", topics)
	}
	for _, topic := range topics {
		body, ok := Get(topic)
		if !ok || body == "" {
			t.Fatalf("topic %q not readable", topic)
		}
	}
	if _, ok := Get("REORDER"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected empty topic to miss")
	}
}
