// Package report contains the financial report aggregation use cases.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

// Schedule is the part of a plan item that drives its expansion into occurrences.
type Schedule struct {
	StartDate time.Time
	EndDate   *time.Time
	Amount    decimal.Decimal
	Repeat    entity.RepeatType
}

// ScheduleOf extracts the schedule of a plan item.
func ScheduleOf(item *entity.PlanItem) Schedule {
	return Schedule{
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
		Amount:    item.Amount,
		Repeat:    item.Repeat,
	}
}

// ExpandSchedule expands a schedule into monthly amounts within [periodStart, periodEnd].
//
// A non-repeating schedule yields exactly one entry for the month of its start date,
// whatever the period bounds are. Repeating schedules emit one amount per occurrence
// between periodStart and min(EndDate, periodEnd); occurrences falling in the same month
// are summed, so the result holds at most one entry per month, in increasing order.
func ExpandSchedule(s Schedule, periodStart, periodEnd time.Time) []valueobject.MonthlyAmount {
	if s.Repeat == entity.RepeatNone || s.Repeat == "" {
		return []valueobject.MonthlyAmount{{
			Month:  valueobject.MonthKey(s.StartDate),
			Amount: s.Amount,
		}}
	}

	start := dateOf(s.StartDate)
	lower := dateOf(periodStart)
	bound := dateOf(periodEnd)
	if s.EndDate != nil && dateOf(*s.EndDate).Before(bound) {
		bound = dateOf(*s.EndDate)
	}

	var result []valueobject.MonthlyAmount
	for k := 0; ; k++ {
		current, ok := occurrence(start, s.Repeat, k)
		if !ok || current.After(bound) {
			break
		}
		if current.Before(lower) {
			continue
		}

		month := valueobject.MonthKey(current)
		if last := len(result) - 1; last >= 0 && result[last].Month == month {
			result[last].Amount = result[last].Amount.Add(s.Amount)
			continue
		}
		result = append(result, valueobject.MonthlyAmount{Month: month, Amount: s.Amount})
	}

	return result
}

// occurrence returns the k-th occurrence date of a schedule starting at start.
// It returns false for repeat types that have no period unit.
func occurrence(start time.Time, repeat entity.RepeatType, k int) (time.Time, bool) {
	switch repeat {
	case entity.RepeatDaily:
		return start.AddDate(0, 0, k), true
	case entity.RepeatWeekly:
		return start.AddDate(0, 0, 7*k), true
	case entity.RepeatMonthly:
		return addMonthsClamped(start, k), true
	case entity.RepeatQuarterly:
		return addMonthsClamped(start, 3*k), true
	case entity.RepeatSemiannual:
		return addMonthsClamped(start, 6*k), true
	case entity.RepeatAnnual:
		return addMonthsClamped(start, 12*k), true
	default:
		return time.Time{}, false
	}
}

// addMonthsClamped adds n months to t. When the target month is shorter than t's day,
// the result is the last day of the target month instead of overflowing into the next one.
// Occurrences are always computed from the schedule start, so Jan 31 yields Feb 29, Mar 31, Apr 30.
func addMonthsClamped(t time.Time, n int) time.Time {
	advanced := t.AddDate(0, n, 0)
	if advanced.Day() == t.Day() {
		return advanced
	}
	return time.Date(t.Year(), t.Month()+time.Month(n)+1, 0, 0, 0, 0, 0, t.Location())
}

// dateOf truncates t to its calendar date, expressed in UTC.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
