// Package report contains the financial report aggregation use cases.
package report

import (
	"testing"
	"time"

	"github.com/bookkeeping/backend/internal/domain/entity"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
)

type expectedMonth struct {
	month  string
	amount int64
}

func assertMonthly(t *testing.T, got []valueobject.MonthlyAmount, want []expectedMonth) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d months, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Month != want[i].month || !got[i].Amount.Equal(amount(want[i].amount)) {
			t.Errorf("entry %d: expected %s=%d, got %s=%s", i, want[i].month, want[i].amount, got[i].Month, got[i].Amount)
		}
	}
}

func TestExpandSchedule(t *testing.T) {
	tests := []struct {
		name        string
		schedule    Schedule
		periodStart time.Time
		periodEnd   time.Time
		expected    []expectedMonth
	}{
		{
			name:        "no repeat ignores the period bounds",
			schedule:    Schedule{StartDate: day("2024-01-15"), Amount: amount(1000), Repeat: entity.RepeatNone},
			periodStart: day("2025-06-01"),
			periodEnd:   day("2025-12-31"),
			expected:    []expectedMonth{{"2024-01", 1000}},
		},
		{
			name:        "empty repeat behaves like none",
			schedule:    Schedule{StartDate: day("2024-03-10"), Amount: amount(50)},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-12-31"),
			expected:    []expectedMonth{{"2024-03", 50}},
		},
		{
			name: "monthly stops at the end date",
			schedule: Schedule{
				StartDate: day("2024-01-01"),
				EndDate:   dayPtr("2024-03-31"),
				Amount:    amount(1000),
				Repeat:    entity.RepeatMonthly,
			},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-12-31"),
			expected:    []expectedMonth{{"2024-01", 1000}, {"2024-02", 1000}, {"2024-03", 1000}},
		},
		{
			name:        "monthly from the 31st never skips february",
			schedule:    Schedule{StartDate: day("2024-01-31"), Amount: amount(1000), Repeat: entity.RepeatMonthly},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-04-30"),
			expected:    []expectedMonth{{"2024-01", 1000}, {"2024-02", 1000}, {"2024-03", 1000}, {"2024-04", 1000}},
		},
		{
			name:        "quarterly",
			schedule:    Schedule{StartDate: day("2024-01-01"), Amount: amount(3000), Repeat: entity.RepeatQuarterly},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-12-31"),
			expected:    []expectedMonth{{"2024-01", 3000}, {"2024-04", 3000}, {"2024-07", 3000}, {"2024-10", 3000}},
		},
		{
			name:        "semiannual",
			schedule:    Schedule{StartDate: day("2024-02-15"), Amount: amount(600), Repeat: entity.RepeatSemiannual},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2025-12-31"),
			expected:    []expectedMonth{{"2024-02", 600}, {"2024-08", 600}, {"2025-02", 600}, {"2025-08", 600}},
		},
		{
			name:        "annual from a leap day",
			schedule:    Schedule{StartDate: day("2024-02-29"), Amount: amount(10), Repeat: entity.RepeatAnnual},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2026-12-31"),
			expected:    []expectedMonth{{"2024-02", 10}, {"2025-02", 10}, {"2026-02", 10}},
		},
		{
			name:        "weekly occurrences of one month are summed",
			schedule:    Schedule{StartDate: day("2024-01-01"), Amount: amount(100), Repeat: entity.RepeatWeekly},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-02-10"),
			expected:    []expectedMonth{{"2024-01", 500}, {"2024-02", 100}},
		},
		{
			name:        "daily",
			schedule:    Schedule{StartDate: day("2024-02-27"), Amount: amount(1), Repeat: entity.RepeatDaily},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-03-02"),
			expected:    []expectedMonth{{"2024-02", 3}, {"2024-03", 2}},
		},
		{
			name:        "occurrences before the period are filtered out",
			schedule:    Schedule{StartDate: day("2023-11-01"), Amount: amount(200), Repeat: entity.RepeatMonthly},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-02-29"),
			expected:    []expectedMonth{{"2024-01", 200}, {"2024-02", 200}},
		},
		{
			name: "end date before the period yields nothing",
			schedule: Schedule{
				StartDate: day("2023-01-01"),
				EndDate:   dayPtr("2023-06-30"),
				Amount:    amount(200),
				Repeat:    entity.RepeatMonthly,
			},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-12-31"),
			expected:    nil,
		},
		{
			name:        "unknown repeat type yields nothing",
			schedule:    Schedule{StartDate: day("2024-01-01"), Amount: amount(200), Repeat: entity.RepeatType("fortnightly")},
			periodStart: day("2024-01-01"),
			periodEnd:   day("2024-12-31"),
			expected:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandSchedule(tt.schedule, tt.periodStart, tt.periodEnd)
			assertMonthly(t, got, tt.expected)
		})
	}
}

func TestAddMonthsClamped(t *testing.T) {
	start := day("2024-01-31")

	tests := []struct {
		months   int
		expected string
	}{
		{0, "2024-01-31"},
		{1, "2024-02-29"},
		{2, "2024-03-31"},
		{3, "2024-04-30"},
		{13, "2025-02-28"},
	}

	for _, tt := range tests {
		got := addMonthsClamped(start, tt.months)
		if got.Format("2006-01-02") != tt.expected {
			t.Errorf("addMonthsClamped(%d): expected %s, got %s", tt.months, tt.expected, got.Format("2006-01-02"))
		}
	}
}
