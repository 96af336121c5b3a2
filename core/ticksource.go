package core

import "errors"

// ErrBadPrescaler is returned by tick sources for divisor selectors outside
// the supported 0..7 range.
var ErrBadPrescaler = errors.New("prescaler out of range")

// TickSource is the hardware collaborator that produces the periodic tick.
// Implementations configure a clock divisor and arrange for Scheduler.Tick
// (interrupt context) or Scheduler.PollTick (polled main loop) to run once
// per tick. The scheduler itself never touches hardware registers.
type TickSource interface {
	// Configure selects the prescaler divisor, 0 through 7. How the
	// divisor maps to real time is the implementation's business.
	Configure(prescaler uint8) error

	// Start begins delivering ticks.
	Start() error

	// Stop ceases tick delivery. Pending alarms keep their state; time
	// simply stops passing.
	Stop()
}

// SimTickSource is a hand-pumped tick source for hosted tests and
// simulations. Ticks happen only when Pump is called.
type SimTickSource struct {
	prescaler uint8
	running   bool
	sched     *Scheduler
}

// Bind attaches the scheduler that Pump will drive. Done post-construction
// because the scheduler wants its tick source at construction too.
func (t *SimTickSource) Bind(s *Scheduler) {
	t.sched = s
}

// Configure records the divisor; a simulated clock has no real-time rate to
// adjust, but the range check matches hardware implementations.
func (t *SimTickSource) Configure(prescaler uint8) error {
	if prescaler > 7 {
		return ErrBadPrescaler
	}
	t.prescaler = prescaler
	return nil
}

// Prescaler returns the last configured divisor.
func (t *SimTickSource) Prescaler() uint8 {
	return t.prescaler
}

// Start marks the source running.
func (t *SimTickSource) Start() error {
	t.running = true
	return nil
}

// Stop marks the source stopped; Pump becomes a no-op.
func (t *SimTickSource) Stop() {
	t.running = false
}

// Running reports whether ticks are being delivered.
func (t *SimTickSource) Running() bool {
	return t.running
}

// Pump delivers n ticks to the bound scheduler.
func (t *SimTickSource) Pump(n int) {
	if !t.running || t.sched == nil {
		return
	}
	for i := 0; i < n; i++ {
		t.sched.PollTick()
	}
}
