package core

// DefaultTickRateHz is the tick rate assumed until SetTickRate is
// called: one tick per microsecond.
const DefaultTickRateHz = 1000000

var tickRateHz uint32 = DefaultTickRateHz

// SetTickRate declares how many hardware ticks elapse per second. Call
// it once at startup, before converting any durations; it only affects
// the conversion helpers, never the scheduler itself.
func SetTickRate(hz uint32) {
	tickRateHz = hz
}

// TickRate returns the configured tick rate in Hz.
func TickRate() uint32 {
	return tickRateHz
}

// TicksFromSeconds converts seconds to ticks.
func TicksFromSeconds(s uint32) uint32 {
	return uint32(uint64(s) * uint64(tickRateHz))
}

// TicksFromMilliseconds converts milliseconds to ticks.
func TicksFromMilliseconds(ms uint32) uint32 {
	return uint32(uint64(ms) * uint64(tickRateHz) / 1000)
}

// TicksFromMicroseconds converts microseconds to ticks.
func TicksFromMicroseconds(us uint32) uint32 {
	return uint32(uint64(us) * uint64(tickRateHz) / 1000000)
}
