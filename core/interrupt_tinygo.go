//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts for the duration of a schedule
// mutation, so the timer ISR never observes a half-linked list or a
// stale countdown. Returns the previous state for restoreInterrupts.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state saved by
// disableInterrupts.
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
