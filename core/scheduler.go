// Package core implements an interrupt-driven software alarm scheduler for
// microcontroller targets.
//
// A Scheduler owns a 15-bit wrapping logical clock and a sorted,
// fixed-capacity set of pending alarms. A hardware tick source advances the
// clock by calling Tick once per tick interrupt; alarms whose wake time
// matches the new clock value fire in order. All public mutations that race
// with the tick path run inside interrupt critical sections, which are
// no-ops on hosted builds so the whole package runs under go test.
package core

import "errors"

// ErrNoTickSource is returned by Configure when the scheduler was built
// without a hardware tick source.
var ErrNoTickSource = errors.New("scheduler has no tick source")

// DefaultCapacity is the pending-set size used by NewScheduler when the
// caller passes 0. Each slot costs one pointer of RAM.
const DefaultCapacity = 5

// Scheduler tracks pending alarms sorted ascending by wake time under the
// wrap-safe ordering and fires them as the logical clock advances.
type Scheduler struct {
	now     uint16
	pending *RefList[Alarm]
	src     TickSource
}

// NewScheduler returns a scheduler with room for capacity pending alarms
// (DefaultCapacity if 0). src is the hardware tick collaborator; it may be
// nil on hosted builds where something else pumps PollTick.
func NewScheduler(capacity int, src TickSource) *Scheduler {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Scheduler{pending: NewRefList[Alarm](capacity), src: src}
}

// normalize maps a wake time into a range where raw comparison is
// meaningful despite clock wraparound. A wake time at or ahead of the
// current clock compares as-is; one the clock has already passed must wait
// for a full wrap, so it gets a virtual 16th bit and compares later than
// anything still ahead. The clock read is fenced so a tick cannot slide it
// mid-comparison.
func (s *Scheduler) normalize(t uint16) uint16 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	if s.now > t {
		return t | 0x8000
	}
	return t
}

// search returns the index of the first pending alarm whose wake time is
// strictly later than a's under the wrap-safe ordering. Equal wake times
// are treated as already ordered, so a new alarm lands after existing ties
// and ties fire in registration order. Runs with interrupts suppressed to
// keep the clock stable across the scan.
func (s *Scheduler) search(a *Alarm) int {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	i := 0
	for ; i < s.pending.Count(); i++ {
		if s.normalize(a.wakeTime) < s.normalize(s.pending.At(i).wakeTime) {
			break
		}
	}
	return i
}

// Schedule computes a's wake time from the current clock and its period and
// inserts it at the position that keeps the pending set sorted. It returns
// false, scheduling nothing, when the set is already full; callers that
// never check can treat registration as fire-and-forget exactly like the
// silent fixed-capacity behavior of the list itself.
//
// The alarm's storage must stay alive until it is canceled or exhausted.
// Periods above MaxPeriod are not representable; see Alarm.SetPeriod.
func (s *Scheduler) Schedule(a *Alarm) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.pending.IsFull() {
		return false
	}
	a.wakeTime = (s.now + a.period) & timeMask

	if s.pending.Count() == 0 {
		s.pending.Add(a)
		return true
	}
	s.pending.InsertAt(s.search(a), a)
	return true
}

// Cancel removes a from the pending set. Canceling an alarm that is not
// pending (never scheduled, already exhausted, or already canceled) is a
// silent no-op: the scan runs off the end and the removal there does
// nothing. Cancel is therefore idempotent.
func (s *Scheduler) Cancel(a *Alarm) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	i := 0
	for ; i < s.pending.Count(); i++ {
		if s.pending.At(i) == a {
			break
		}
	}
	s.pending.RemoveAt(i)
}

// Tick advances the logical clock one step and fires every alarm whose wake
// time equals the new clock value. It is the tick-interrupt body and must
// run with interrupts already disabled; normal-context drivers use PollTick
// instead.
//
// For each due alarm the wake time is advanced first, then the callback
// runs via Expire. An alarm whose repeat count just hit zero is removed;
// otherwise a single forward bubble pass re-inserts the head into the
// still-sorted remainder. Only the head's key changed, and only forward, so
// one pass to the first ordered pair is sufficient. Several alarms may share
// the same tick; the loop drains them all, ties firing in slot order.
func (s *Scheduler) Tick() {
	s.now = (s.now + 1) & timeMask

	if s.pending.Count() == 0 {
		return
	}

	for s.pending.Count() > 0 && s.pending.At(0).wakeTime == s.now {
		head := s.pending.At(0)
		head.UpdateWakeTime()

		if !head.Expire() {
			// Repeat count exhausted: drop it instead of re-arming.
			s.pending.RemoveAt(0)
			continue
		}

		for i := 1; i < s.pending.Count(); i++ {
			if s.normalize(s.pending.At(i-1).wakeTime) > s.normalize(s.pending.At(i).wakeTime) {
				s.pending.Swap(i-1, i)
			} else {
				break
			}
		}
	}
}

// PollTick runs one tick from normal context, wrapping Tick in a critical
// section. Polled tick sources (main-loop drivers, the hosted ticker) use
// this; a real tick ISR calls Tick directly since interrupts are already
// off there.
func (s *Scheduler) PollTick() {
	state := disableInterrupts()
	s.Tick()
	restoreInterrupts(state)
}

// Configure selects the tick source's prescaler divisor, changing the
// real-time length of one tick for every alarm at once.
func (s *Scheduler) Configure(prescaler uint8) error {
	if s.src == nil {
		return ErrNoTickSource
	}
	return s.src.Configure(prescaler)
}

// Now returns the current logical clock value.
func (s *Scheduler) Now() uint16 {
	return s.now
}

// Count returns the number of pending alarms.
func (s *Scheduler) Count() int {
	return s.pending.Count()
}

// WakeTimeAt returns the wake time of the pending alarm at index i. Index 0
// is always the next alarm due. No bounds checking, like the list it reads.
func (s *Scheduler) WakeTimeAt(i int) uint16 {
	return s.pending.At(i).wakeTime
}

// IsFull reports whether another Schedule call would be rejected.
func (s *Scheduler) IsFull() bool {
	return s.pending.IsFull()
}
