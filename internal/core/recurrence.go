package core

import (
	"time"

	"taskhorizon/pkg/models"
)

// NextDue computes the next occurrence after due for the given recurrence
// rule. It is a pure function of its inputs.
//
// Month and year steps use time.AddDate's native normalization: when the
// current day-of-month does not exist in the target month the date overflows
// into the following month (Jan 31 + 1 month = Mar 2, or Mar 3 before a
// non-leap February). Multi-month steps carry overflow into the year
// component the same way.
//
// An unrecognized rule, or a value-bearing rule without a positive value,
// returns due unchanged rather than erroring.
func NextDue(due time.Time, rule models.RecurrenceRule, value int) time.Time {
	switch rule {
	case models.RecurDaily:
		return due.AddDate(0, 0, 1)
	case models.RecurWeekly:
		return due.AddDate(0, 0, 7)
	case models.RecurMonthly:
		return due.AddDate(0, 1, 0)
	case models.RecurYearly:
		return due.AddDate(1, 0, 0)
	case models.RecurDays:
		if value > 0 {
			return due.AddDate(0, 0, value)
		}
	case models.RecurWeeks:
		if value > 0 {
			return due.AddDate(0, 0, 7*value)
		}
	case models.RecurMonths:
		if value > 0 {
			return due.AddDate(0, value, 0)
		}
	}
	return due
}
