package model

import "testing"

func TestTimeRange(t *testing.T) {
	cases := []struct {
		start, end, want string
	}{
		{"09:00", "10:30", "09:00-10:30"},
		{"09:00", "", "09:00"},
		{"", "10:30", "-10:30"},
		{" ", "", ""},
	}
	for _, c := range cases {
		got := Task{StartTime: c.start, EndTime: c.end}.TimeRange()
		if got != c.want {
			t.Fatalf("TimeRange(%q,%q)=%q; want %q", c.start, c.end, got, c.want)
		}
	}
}

func TestValidTimeAndDate(t *testing.T) {
	if !ValidTime("") || !ValidTime("23:59") || ValidTime("24:00") || ValidTime("9am") {
		t.Fatalf("unexpected ValidTime results")
	}
	if !ValidDate("2026-01-31") || ValidDate("2026-02-30") || ValidDate("") {
		t.Fatalf("unexpected ValidDate results")
	}
}
