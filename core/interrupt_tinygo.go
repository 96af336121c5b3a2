//go:build tinygo

package core

import "runtime/interrupt"

// State holds the saved interrupt-enable state across a critical section.
type State = interrupt.State

// disableInterrupts masks interrupts and returns the state to restore.
// Restoring the saved state rather than unconditionally re-enabling lets
// critical sections nest.
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt mask saved at the matching
// disableInterrupts.
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}
