package core

import (
	"testing"
	"time"

	"taskhorizon/pkg/models"
)

func TestNextDue_FixedRules(t *testing.T) {
	due := time.Date(2026, 6, 15, 9, 30, 0, 0, time.Local)

	cases := []struct {
		name string
		rule models.RecurrenceRule
		want time.Time
	}{
		{"daily", models.RecurDaily, time.Date(2026, 6, 16, 9, 30, 0, 0, time.Local)},
		{"weekly", models.RecurWeekly, time.Date(2026, 6, 22, 9, 30, 0, 0, time.Local)},
		{"monthly", models.RecurMonthly, time.Date(2026, 7, 15, 9, 30, 0, 0, time.Local)},
		{"yearly", models.RecurYearly, time.Date(2027, 6, 15, 9, 30, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDue(due, tc.rule, 0)
			if !got.Equal(tc.want) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNextDue_ValueRules(t *testing.T) {
	due := time.Date(2026, 6, 15, 9, 30, 0, 0, time.Local)

	cases := []struct {
		name  string
		rule  models.RecurrenceRule
		value int
		want  time.Time
	}{
		{"every 3 days", models.RecurDays, 3, time.Date(2026, 6, 18, 9, 30, 0, 0, time.Local)},
		{"every 2 weeks", models.RecurWeeks, 2, time.Date(2026, 6, 29, 9, 30, 0, 0, time.Local)},
		{"every 4 months", models.RecurMonths, 4, time.Date(2026, 10, 15, 9, 30, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDue(due, tc.rule, tc.value)
			if !got.Equal(tc.want) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNextDue_MonthEndOverflow(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month past the short February.
	due := time.Date(2026, 1, 31, 8, 0, 0, 0, time.Local)
	got := NextDue(due, models.RecurMonthly, 0)
	want := time.Date(2026, 3, 3, 8, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestNextDue_YearCarry(t *testing.T) {
	due := time.Date(2026, 12, 20, 8, 0, 0, 0, time.Local)

	if got := NextDue(due, models.RecurMonthly, 0); got.Year() != 2027 || got.Month() != time.January {
		t.Fatalf("monthly across December gave %s", got)
	}
	if got := NextDue(due, models.RecurMonths, 14); got.Year() != 2028 || got.Month() != time.February {
		t.Fatalf("14 months across year boundary gave %s", got)
	}
	if got := NextDue(due, models.RecurWeekly, 0); got.Year() != 2026 || got.Day() != 27 {
		t.Fatalf("weekly gave %s", got)
	}
}

func TestNextDue_DegenerateInputs(t *testing.T) {
	due := time.Date(2026, 6, 15, 9, 30, 0, 0, time.Local)

	if got := NextDue(due, "fortnightly", 0); !got.Equal(due) {
		t.Fatalf("unknown rule must return due unchanged, got %s", got)
	}
	if got := NextDue(due, models.RecurDays, 0); !got.Equal(due) {
		t.Fatalf("days with zero value must return due unchanged, got %s", got)
	}
	if got := NextDue(due, models.RecurMonths, -2); !got.Equal(due) {
		t.Fatalf("months with negative value must return due unchanged, got %s", got)
	}
}
