package mock

import (
	"sync"
	"time"
)

// Time is a clock frozen at a chosen instant that keeps ticking from there.
type Time struct {
	mu               sync.RWMutex
	currentStartTime time.Time
	updatedAt        time.Time
}

func NewTime() *Time {
	now := time.Now().UTC()
	return &Time{
		currentStartTime: now,
		updatedAt:        now,
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentStartTime = currentTime.UTC()
	t.updatedAt = time.Now()
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentStartTime.Add(time.Since(t.updatedAt))
}
