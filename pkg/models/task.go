package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RecurrenceRule governs how a recurring task's next due time is computed.
type RecurrenceRule string

const (
	RecurDaily   RecurrenceRule = "daily"
	RecurWeekly  RecurrenceRule = "weekly"
	RecurMonthly RecurrenceRule = "monthly"
	RecurYearly  RecurrenceRule = "yearly"
	RecurDays    RecurrenceRule = "days"
	RecurWeeks   RecurrenceRule = "weeks"
	RecurMonths  RecurrenceRule = "months"
)

// Valid reports whether r is one of the recognized recurrence rules.
func (r RecurrenceRule) Valid() bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly,
		RecurDays, RecurWeeks, RecurMonths:
		return true
	}
	return false
}

// NeedsValue reports whether r requires a positive recurrence value
// (the "every n units" rules).
func (r RecurrenceRule) NeedsValue() bool {
	switch r {
	case RecurDays, RecurWeeks, RecurMonths:
		return true
	}
	return false
}

// TimeLayout is the canonical timestamp format for task times: naive local
// time without a zone, e.g. "2026-03-14T09:00:00".
const TimeLayout = "2006-01-02T15:04:05"

// timeLayouts lists the accepted input formats, most specific first.
var timeLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses a task timestamp in the local location. Times carry no
// zone designator and are compared as naive local time throughout.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use ISO format (YYYY-MM-DDTHH:MM:SS)", s)
}

// Task represents one concrete scheduled occurrence of a (possibly
// recurring) obligation. Times are stored in their string form; the DueAt
// and CreatedAtTime accessors parse on demand.
type Task struct {
	ID              string         `json:"task_id" yaml:"task_id"`
	Summary         string         `json:"summary" yaml:"summary"`
	Details         string         `json:"details" yaml:"details"`
	IsRecurring     bool           `json:"is_recurring" yaml:"is_recurring"`
	RecurrenceType  RecurrenceRule `json:"recurrence_type,omitempty" yaml:"recurrence_type,omitempty"`
	RecurrenceValue int            `json:"recurrence_value,omitempty" yaml:"recurrence_value,omitempty"`
	DueTime         string         `json:"due_time" yaml:"due_time"`
	AlertTimes      []string       `json:"alert_times" yaml:"alert_times"`
	CreatedAt       string         `json:"created_at" yaml:"created_at"`
}

// EnsureAlertDefault fills in the default alert schedule: a single alert at
// the due time. The entity enforces nothing else; validation lives in the
// task manager.
func (t *Task) EnsureAlertDefault() {
	if len(t.AlertTimes) == 0 {
		t.AlertTimes = []string{t.DueTime}
	}
}

// DueAt returns the parsed due time. An unparseable stored value is a caller
// error and is surfaced, never silently tolerated.
func (t *Task) DueAt() (time.Time, error) {
	due, err := ParseTime(t.DueTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("task %s: due time: %w", t.ID, err)
	}
	return due, nil
}

// CreatedAtTime returns the parsed creation time.
func (t *Task) CreatedAtTime() (time.Time, error) {
	created, err := ParseTime(t.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("task %s: created at: %w", t.ID, err)
	}
	return created, nil
}

// Clone returns a deep copy of the task. Accessors on the store hand out
// clones so no caller ever holds a live alias into stored state.
func (t *Task) Clone() Task {
	c := *t
	if t.AlertTimes != nil {
		c.AlertTimes = append([]string(nil), t.AlertTimes...)
	}
	return c
}

// NewTaskID builds a task identifier of the form <uuid>_<unix-epoch-seconds>,
// embedding the occurrence's due time. The embedded timestamp is fixed at
// creation and is never re-derived, even if the due time is later updated.
func NewTaskID(due time.Time) string {
	return uuid.NewString() + "_" + strconv.FormatInt(due.Unix(), 10)
}
