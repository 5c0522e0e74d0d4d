package core

// Hardware is the physical countdown timer the scheduler multiplexes.
// Exactly one implementation is attached per Scheduler, before the first
// Start call.
//
// The contract mirrors a classic auto-reload downcounter peripheral:
// Arm loads the counter, the counter decrements once per tick, and the
// interrupt fires when it reaches zero. Platforms whose timer counts up
// against a compare register (e.g. the RP2040 TIMER) convert in their
// adapter; see targets/rp2040.
type Hardware interface {
	// Arm programs the countdown to interrupt after ticks ticks from now,
	// replacing any pending countdown. Arm(0) disarms the timer.
	Arm(ticks uint32)

	// Count returns the current countdown value: the number of ticks
	// remaining until the armed interrupt fires. Only called while a
	// countdown is pending.
	Count() uint32
}
