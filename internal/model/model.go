package model

import (
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Date is the day the task is planned for (YYYY-MM-DD).
	Date string `json:"date"`
	// Priority is the task's position within its day; lower sorts first.
	Priority int  `json:"priority"`
	Done     bool `json:"done"`

	StartTime string `json:"startTime,omitempty"` // HH:MM
	EndTime   string `json:"endTime,omitempty"`   // HH:MM

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key is the stable identity used while reordering.
func (t Task) Key() string { return t.ID }

// TimeRange renders "09:00-10:30", a single bound, or "".
func (t Task) TimeRange() string {
	s := strings.TrimSpace(t.StartTime)
	e := strings.TrimSpace(t.EndTime)
	switch {
	case s != "" && e != "":
		return s + "-" + e
	case s != "":
		return s
	case e != "":
		return "-" + e
	default:
		return ""
	}
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return err == nil
}

// ValidTime accepts HH:MM (24h). Empty is valid (no time).
func ValidTime(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// Today returns the local date in DateLayout.
func Today() string { return time.Now().Format(DateLayout) }
