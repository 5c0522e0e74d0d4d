//go:build rp2040

package main

import (
	"device/rp"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// RP2040 TIMER peripheral memory map. The peripheral is a 64-bit
// free-running 1MHz counter with four 32-bit compare alarms; alarm 0 is
// reserved for the scheduler.
const (
	timerBase     = 0x40054000
	timerALARM0   = timerBase + 0x10 // Alarm 0 compare value (writing arms)
	timerARMED    = timerBase + 0x20 // Armed bitmask (write 1 to disarm)
	timerTIMERAWH = timerBase + 0x24 // Raw counter high word
	timerTIMERAWL = timerBase + 0x28 // Raw counter low word
	timerINTR     = timerBase + 0x34 // Raw interrupts (write 1 to clear)
	timerINTE     = timerBase + 0x38 // Interrupt enable
)

var (
	regALARM0   = (*volatile.Register32)(unsafe.Pointer(uintptr(timerALARM0)))
	regARMED    = (*volatile.Register32)(unsafe.Pointer(uintptr(timerARMED)))
	regTIMERAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	regTIMERAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
	regINTR     = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTR)))
	regINTE     = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTE)))
)

// AlarmTimer adapts the RP2040 TIMER/ALARM0 pair to the scheduler's
// downcounter contract: the hardware counts up against a compare value,
// so Count derives the remaining ticks from the stored target.
type AlarmTimer struct {
	target uint32
}

// Arm programs ALARM0 to fire ticks microseconds from now. Arm(0)
// disarms the alarm.
func (a *AlarmTimer) Arm(ticks uint32) {
	if ticks == 0 {
		regARMED.Set(1 << 0)
		regINTR.Set(1 << 0)
		return
	}
	a.target = regTIMERAWL.Get() + ticks
	regALARM0.Set(a.target)
}

// Count returns the microseconds remaining until the armed alarm fires.
// Inside the ISR the counter has already passed the target; report zero
// rather than a wrapped difference.
func (a *AlarmTimer) Count() uint32 {
	remaining := a.target - regTIMERAWL.Get()
	if remaining&(1<<31) != 0 {
		return 0
	}
	return remaining
}

// InitAlarm routes TIMER_IRQ_0 to the scheduler's dispatch and enables
// it. The scheduler must already have the adapter attached.
func InitAlarm() {
	regINTE.Set(1 << 0)

	intr := interrupt.New(rp.IRQ_TIMER_IRQ_0, timerISR)
	intr.Enable()
}

// timerISR acknowledges ALARM0 and drains the schedule. Dispatch
// re-arms the alarm for the next pending expiry before callbacks run.
func timerISR(interrupt.Interrupt) {
	regINTR.Set(1 << 0)
	sched.Dispatch()
}

// HardwareTime reads the low word of the free-running counter, for
// trace timestamps.
func HardwareTime() uint32 {
	return regTIMERAWL.Get()
}
