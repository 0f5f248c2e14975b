package onion

import (
	"time"
)

// Time tracks wall-clock frame timing. Tick once per update.
type Time struct {
	Now time.Time
	Dt  time.Duration

	now func() time.Time
}

func NewTime() *Time {
	return newTimeWithClock(time.Now)
}

func newTimeWithClock(clock func() time.Time) *Time {
	return &Time{Now: clock(), now: clock}
}

func (t *Time) Tick() {
	now := t.now()
	t.Dt = now.Sub(t.Now)
	t.Now = now
}

// Seconds returns Dt in seconds as float32 for per-frame math.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}
