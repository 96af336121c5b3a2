//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 TIMER peripheral: a free-running 64-bit microsecond counter.
// Only the low word is needed; tick derivation works on uint32 wrap.
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // raw counter, low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// hardwareMicros reads the low 32 bits of the microsecond counter.
func hardwareMicros() uint32 {
	return timerRAWL.Get()
}
