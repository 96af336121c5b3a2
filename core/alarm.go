package core

// Callback is invoked from the tick path each time an alarm comes due. The
// opaque arg supplied at setup is passed through unmodified, so a single
// callback can serve many alarms by dispatching on arg.
type Callback func(arg any)

const (
	// timeMask confines the logical clock and all wake times to 15 bits.
	timeMask = 0x7FFF

	// MaxPeriod is the longest representable alarm period: half the clock
	// range. Beyond it the wrap-safe ordering can no longer tell a
	// far-future wake time from one already past. Not checked at runtime;
	// the tick path stays free of panics.
	MaxPeriod = 0x4000
)

// Alarm describes one pending firing: the period between firings, how many
// firings remain, the absolute wake time, and the callback to run.
//
// The scheduler holds only a reference; the Alarm itself lives in caller
// storage (stack, global, or a caller arena) and must outlive its
// registration.
type Alarm struct {
	wakeTime uint16
	period   uint16
	repeats  uint16
	fn       Callback
	arg      any
}

// NewAlarm returns an alarm with the given period in ticks and repeat count.
// A repeat count of 0 means fire forever until canceled.
func NewAlarm(period, repeats uint16) *Alarm {
	return &Alarm{period: period, repeats: repeats}
}

// SetPeriod sets the ticks between firings. Periods above MaxPeriod break
// wake-time ordering. Use ModifyPeriod once the alarm is scheduled.
func (a *Alarm) SetPeriod(p uint16) { a.period = p }

// SetRepeats sets how many firings remain; 0 means never stop.
// Use ModifyRepeats once the alarm is scheduled.
func (a *Alarm) SetRepeats(r uint16) { a.repeats = r }

// SetCallback sets the function run at each firing.
// Use ModifyCallback once the alarm is scheduled.
func (a *Alarm) SetCallback(fn Callback) { a.fn = fn }

// SetArg sets the opaque value handed to the callback.
// Use ModifyArg once the alarm is scheduled.
func (a *Alarm) SetArg(arg any) { a.arg = arg }

// SetWakeTime sets the absolute clock value at which the alarm next fires,
// masked into the 15-bit clock range. Schedule overwrites this; it exists
// for callers that manage wake times by hand together with Scheduler.Now.
func (a *Alarm) SetWakeTime(t uint16) { a.wakeTime = t & timeMask }

// ModifyPeriod replaces the period on a scheduled alarm. The write happens
// inside a critical section so the tick path never sees a torn value.
func (a *Alarm) ModifyPeriod(p uint16) {
	state := disableInterrupts()
	a.period = p
	restoreInterrupts(state)
}

// ModifyRepeats replaces the remaining repeat count on a scheduled alarm.
func (a *Alarm) ModifyRepeats(r uint16) {
	state := disableInterrupts()
	a.repeats = r
	restoreInterrupts(state)
}

// ModifyCallback replaces the callback on a scheduled alarm.
func (a *Alarm) ModifyCallback(fn Callback) {
	state := disableInterrupts()
	a.fn = fn
	restoreInterrupts(state)
}

// ModifyArg replaces the callback argument on a scheduled alarm.
func (a *Alarm) ModifyArg(arg any) {
	state := disableInterrupts()
	a.arg = arg
	restoreInterrupts(state)
}

// ModifyWakeTime replaces the wake time on a scheduled alarm. The scheduler
// does not re-sort on this; normally only the tick path moves wake times.
func (a *Alarm) ModifyWakeTime(t uint16) {
	state := disableInterrupts()
	a.wakeTime = t & timeMask
	restoreInterrupts(state)
}

// Period returns the ticks between firings.
func (a *Alarm) Period() uint16 { return a.period }

// WakeTime returns the clock value at which the alarm next fires.
func (a *Alarm) WakeTime() uint16 { return a.wakeTime }

// Remaining returns the number of firings left; 0 means unlimited.
func (a *Alarm) Remaining() uint16 { return a.repeats }

// UpdateWakeTime advances the wake time by one period, wrapping at the
// 15-bit boundary, and returns the new value. The tick path calls this
// before running the callback so a callback that inspects its own alarm
// sees the upcoming wake time, not the one that just elapsed.
func (a *Alarm) UpdateWakeTime() uint16 {
	a.wakeTime = (a.period + a.wakeTime) & timeMask
	return a.wakeTime
}

// Expire runs the callback, then decrements the repeat count unless it is
// the fire-forever sentinel 0. It returns false exactly when the decrement
// reaches zero, signaling that the alarm wants no further firings.
func (a *Alarm) Expire() bool {
	a.fn(a.arg)
	if a.repeats != 0 {
		a.repeats--
		if a.repeats == 0 {
			return false
		}
	}
	return true
}
