// Package ticker drives a scheduler from wall time on hosted builds,
// standing in for the hardware tick interrupt when the core runs inside an
// ordinary process (simulation, integration tests, host-side prototyping).
//
// A Ticker does not own a goroutine; the caller polls it from its own loop,
// typically off a time.Ticker running at the tick duration:
//
//	tk := ticker.New(sched, time.Millisecond)
//	for range time.Tick(time.Millisecond) {
//		tk.Poll()
//	}
//
// Poll catches up on however many ticks elapsed since the previous call, so
// a late poll delivers a burst rather than losing time.
package ticker

import (
	"time"

	"github.com/aristanetworks/goarista/monotime"

	"chime/core"
)

// Ticker converts monotonic wall time into scheduler ticks.
type Ticker struct {
	sched *core.Scheduler
	tick  time.Duration
	now   func() uint64
	last  uint64
}

// New returns a ticker delivering one scheduler tick per tick duration,
// measured against the monotonic clock. A non-positive duration defaults to
// 10ms.
func New(sched *core.Scheduler, tick time.Duration) *Ticker {
	return NewWithClock(sched, tick, monotime.Now)
}

// NewWithClock is New with an injected monotonic nanosecond clock, for
// deterministic tests.
func NewWithClock(sched *core.Scheduler, tick time.Duration, now func() uint64) *Ticker {
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	t := &Ticker{sched: sched, tick: tick, now: now}
	t.last = t.now() / uint64(tick.Nanoseconds())
	return t
}

// Poll delivers every tick that elapsed since the last call and returns how
// many were delivered. A clock reading that went backwards is absorbed by
// re-basing with no ticks delivered.
func (t *Ticker) Poll() int {
	cur := t.now() / uint64(t.tick.Nanoseconds())
	if cur <= t.last {
		t.last = cur
		return 0
	}

	n := int(cur - t.last)
	t.last = cur
	for i := 0; i < n; i++ {
		t.sched.PollTick()
	}
	return n
}

// Tick returns the configured tick duration.
func (t *Ticker) Tick() time.Duration {
	return t.tick
}
