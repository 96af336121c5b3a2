//go:build !tinygo

package core

// State holds the saved interrupt-enable state across a critical section.
type State uintptr

// disableInterrupts opens a critical section. Hosted builds have no tick
// interrupt, so this is a no-op that exists to keep call sites identical
// across builds and let the core run under go test.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts closes a critical section opened by disableInterrupts.
func restoreInterrupts(State) {
}
