// Package valueobject contains domain value objects for the bookkeeping system.
package valueobject

import "github.com/shopspring/decimal"

// Rounding is the unit report amounts are rounded to.
// Units of 1 or less round to cents; larger units round to the nearest multiple.
type Rounding int64

// Apply rounds value according to the unit. Ties round half away from zero,
// so 1250 and -1250 at unit 100 become 1300 and -1300.
func (r Rounding) Apply(value decimal.Decimal) decimal.Decimal {
	if r <= 1 {
		return value.Round(2)
	}
	unit := decimal.NewFromInt(int64(r))
	return value.Div(unit).Round(0).Mul(unit)
}
