//go:build rp2040

package main

import "chime/core"

// rpTickSource derives scheduler ticks from the RP2040's 1MHz microsecond
// counter. The prescaler selects microseconds per tick in powers of two:
// 256us at divisor 0 up to ~32.8ms at divisor 7.
type rpTickSource struct {
	usPerTick uint32
	lastUS    uint32
	running   bool
}

func newRPTickSource() *rpTickSource {
	return &rpTickSource{usPerTick: 256}
}

func (t *rpTickSource) Configure(prescaler uint8) error {
	if prescaler > 7 {
		return core.ErrBadPrescaler
	}
	t.usPerTick = 256 << prescaler
	return nil
}

func (t *rpTickSource) Start() error {
	t.lastUS = hardwareMicros()
	t.running = true
	return nil
}

func (t *rpTickSource) Stop() {
	t.running = false
}

// poll delivers every tick that elapsed on the hardware counter since the
// last call. The uint32 subtraction stays correct across counter wrap, and
// a starved main loop catches up in a burst rather than losing ticks.
func (t *rpTickSource) poll(s *core.Scheduler) {
	if !t.running {
		return
	}
	for hardwareMicros()-t.lastUS >= t.usPerTick {
		t.lastUS += t.usPerTick
		s.PollTick()
	}
}
