// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/bookkeeping/backend/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the wall time in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
