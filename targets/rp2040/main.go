//go:build rp2040

// RP2040 reference firmware: a heartbeat alarm blinks the on-board LED and
// every firing is framed onto the USB CDC trace stream for chimemon.
package main

import (
	"machine"
	"time"

	"chime/core"
	"chime/trace"
)

const (
	heartbeatID     = 1
	heartbeatPeriod = 500 // ticks; ~0.5s at the default divisor

	// Divisor 2 gives 1024us per tick.
	defaultPrescaler = 2
)

var (
	sched     *core.Scheduler
	tsrc      *rpTickSource
	tw        trace.Writer
	heartbeat core.Alarm
	led       machine.Pin
)

func main() {
	led = machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	tsrc = newRPTickSource()
	sched = core.NewScheduler(8, tsrc)
	if err := sched.Configure(defaultPrescaler); err != nil {
		panicBlink()
	}

	heartbeat.SetPeriod(heartbeatPeriod)
	heartbeat.SetRepeats(0)
	heartbeat.SetArg(uint32(heartbeatID))
	heartbeat.SetCallback(onHeartbeat)
	if !sched.Schedule(&heartbeat) {
		panicBlink()
	}

	if err := tsrc.Start(); err != nil {
		panicBlink()
	}

	for {
		tsrc.poll(sched)
		flushTrace()
		time.Sleep(50 * time.Microsecond)
	}
}

// onHeartbeat runs inside the tick critical section: toggle the pin, queue
// the trace event, nothing that blocks.
func onHeartbeat(arg any) {
	led.Set(!led.Get())
	tw.Append(trace.Event{
		Tick:    sched.Now(),
		ID:      arg.(uint32),
		Pending: uint8(sched.Count()),
	})
}

// flushTrace drains queued trace frames to USB from the main loop, outside
// any critical section.
func flushTrace() {
	if tw.Len() == 0 {
		return
	}
	machine.Serial.Write(tw.Bytes())
	tw.Reset()
}

// panicBlink parks the firmware in a fast blink when setup fails; there is
// no console to report to before USB is up.
func panicBlink() {
	for {
		led.Set(!led.Get())
		time.Sleep(100 * time.Millisecond)
	}
}
