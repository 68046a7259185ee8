package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/WillowTech1996/DartsCounter/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing. AfterFunc
// callbacks do not run until the clock is advanced past their deadline,
// and then run synchronously on the advancing goroutine so tests stay
// deterministic.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	timers      []*MockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// MockTimer is a scheduled callback registered with a MockClock
type MockTimer struct {
	clock   *MockClock
	due     time.Time
	fn      func()
	fired   bool
	stopped bool
}

// Stop prevents the timer from firing; reports whether it was still pending
func (t *MockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasPending := !t.fired && !t.stopped
	t.stopped = true
	return wasPending
}

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

// AfterFunc registers f to fire when the clock advances past d from now
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &MockTimer{
		clock: c,
		due:   c.currentTime.Add(d),
		fn:    f,
	}
	c.timers = append(c.timers, timer)
	return timer
}

// Advance moves the clock forward by the given duration, firing due
// timers in deadline order. Callbacks may schedule further timers; those
// fire too if they fall within the advance window.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.currentTime.Add(d)
	c.mu.Unlock()
	c.advanceTo(target)
}

// Set sets the clock to the given time, firing any timers due on the way
func (c *MockClock) Set(t time.Time) {
	c.advanceTo(t)
}

func (c *MockClock) advanceTo(target time.Time) {
	for {
		timer := c.popDue(target)
		if timer == nil {
			break
		}
		// Fire outside the lock: callbacks are allowed to call back
		// into the clock
		timer.fn()
	}
	c.mu.Lock()
	if target.After(c.currentTime) {
		c.currentTime = target
	}
	c.mu.Unlock()
}

// popDue claims the earliest unfired timer due at or before target,
// moving the clock to its deadline, or returns nil if none remain
func (c *MockClock) popDue(target time.Time) *MockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *MockTimer
	for _, timer := range c.timers {
		if timer.fired || timer.stopped || timer.due.After(target) {
			continue
		}
		if next == nil || timer.due.Before(next.due) {
			next = timer
		}
	}
	if next == nil {
		return nil
	}
	next.fired = true
	if next.due.After(c.currentTime) {
		c.currentTime = next.due
	}
	return next
}

// PendingTimers returns how many timers are scheduled and unfired
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, timer := range c.timers {
		if !timer.fired && !timer.stopped {
			count++
		}
	}
	return count
}

// PendingDelays returns the remaining delay of each pending timer,
// soonest first, which lets tests assert on scheduled pacing
func (c *MockClock) PendingDelays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var delays []time.Duration
	for _, timer := range c.timers {
		if !timer.fired && !timer.stopped {
			delays = append(delays, timer.due.Sub(c.currentTime))
		}
	}
	sort.Slice(delays, func(i, j int) bool { return delays[i] < delays[j] })
	return delays
}
