package practice

import "time"

// DefaultTimerDuration is the per-card countdown.
const DefaultTimerDuration = 15 * time.Second

// TimerID identifies one run of the countdown. Ticks carrying an older ID
// belong to a cleared run.
type TimerID uint64

// TickResult reports the effect of one tick.
type TickResult struct {
	ID        TimerID
	Remaining time.Duration
	Expired   bool
	Stale     bool
}

// Timer is a whole-second countdown restarted for every card. It is driven
// by external one-second ticks; it never reads the clock itself.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	id        TimerID
	running   bool
}

// NewTimer creates a stopped timer. A duration <= 0 expires on the first tick.
func NewTimer(d time.Duration) *Timer {
	return &Timer{duration: d, remaining: d}
}

// Reset clears the current run and starts a new one at full duration.
func (t *Timer) Reset() TimerID {
	t.id++
	t.remaining = t.duration
	t.running = true
	return t.id
}

// Stop clears the current run. Its pending ticks become stale.
func (t *Timer) Stop() {
	t.id++
	t.running = false
}

// Tick decrements the run identified by id by one second. Ticks for any
// other run, or after expiry, are reported stale and must not be rescheduled.
func (t *Timer) Tick(id TimerID) TickResult {
	if id != t.id || !t.running {
		return TickResult{ID: id, Remaining: t.remaining, Stale: true}
	}

	t.remaining -= time.Second
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
		return TickResult{ID: id, Expired: true}
	}
	return TickResult{ID: id, Remaining: t.remaining}
}

// ID returns the current run's identifier.
func (t *Timer) ID() TimerID { return t.id }

// Running reports whether a run is counting down.
func (t *Timer) Running() bool { return t.running }

// Remaining returns the time left in the current run.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Duration returns the full countdown length.
func (t *Timer) Duration() time.Duration { return t.duration }
