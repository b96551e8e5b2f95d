// Package valueobject contains domain value objects for the bookkeeping system.
package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the layout of a month key ("YYYY-MM").
const MonthLayout = "2006-01"

// MonthlyAmount is an amount attributed to one calendar month.
type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthKey returns the "YYYY-MM" key of the month containing t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthRange returns the keys of every calendar month between from and to, inclusive.
// It returns nil when to is before from.
func MonthRange(from, to time.Time) []string {
	if to.Before(from) {
		return nil
	}

	var months []string
	current := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(last) {
		months = append(months, MonthKey(current))
		current = current.AddDate(0, 1, 0)
	}
	return months
}

// MonthBuckets holds amounts keyed by month.
type MonthBuckets map[string]decimal.Decimal

// Add accumulates amount into month.
func (b MonthBuckets) Add(month string, amount decimal.Decimal) {
	b[month] = b[month].Add(amount)
}

// Total returns the sum of every bucket.
func (b MonthBuckets) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// Series renders the buckets as an ordered slice over months, zero-filling gaps.
func (b MonthBuckets) Series(months []string) []MonthlyAmount {
	series := make([]MonthlyAmount, len(months))
	for i, month := range months {
		series[i] = MonthlyAmount{Month: month, Amount: b[month]}
	}
	return series
}
