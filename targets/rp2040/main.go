//go:build rp2040

// Demo firmware for the tickmux scheduler on RP2040 (Pico): multiplexes
// an LED blink timer, a heartbeat trace timer, and a one-shot banner
// timer onto TIMER ALARM0, and streams trace frames over USB CDC.
package main

import (
	"machine"
	"runtime/volatile"

	"tickmux/core"
	"tickmux/protocol"
)

// Logical timer ids reported in trace frames.
const (
	idBanner uint32 = iota + 1
	idBlink
	idHeartbeat
)

var (
	sched = core.NewScheduler()
	alarm AlarmTimer

	// Timer storage lives at package scope; the scheduler never
	// allocates.
	bannerTimer    core.Timer
	blinkTimer     core.Timer
	heartbeatTimer core.Timer

	led machine.Pin

	// Expiry events are queued from the ISR and framed in the main
	// loop, keeping USB writes out of interrupt context.
	eventRing [32]protocol.Event
	ringHead  volatile.Register32
	ringTail  volatile.Register32

	seq        uint8
	payloadBuf [16]byte
	frameBuf   [protocol.FrameLengthMax]byte
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{})

	led = machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// RP2040 TIMER runs at 1MHz, which is also the default tick rate;
	// set it anyway so the conversions stay correct if the constant
	// changes.
	core.SetTickRate(1000000)

	sched.Attach(&alarm)
	InitAlarm()

	sched.Create(core.TicksFromSeconds(2), core.SingleShot, onExpire, idBanner, &bannerTimer)
	sched.Create(core.TicksFromMilliseconds(500), core.Repeating, onExpire, idBlink, &blinkTimer)
	sched.Create(core.TicksFromSeconds(1), core.Repeating, onExpire, idHeartbeat, &heartbeatTimer)

	sched.Start(&bannerTimer)
	sched.Start(&blinkTimer)
	sched.Start(&heartbeatTimer)

	emitFrame(protocol.Event{Kind: protocol.EventHello, Ticks: core.TickRate()})

	for {
		flushEvents()
	}
}

// onExpire runs in interrupt context: toggle outputs, queue the trace
// event, nothing more.
func onExpire(arg any) {
	id := arg.(uint32)
	if id == idBlink {
		led.Set(!led.Get())
	}
	pushEvent(protocol.Event{Kind: protocol.EventExpire, ID: id, Ticks: HardwareTime()})
}

func pushEvent(ev protocol.Event) {
	head := ringHead.Get()
	next := (head + 1) % uint32(len(eventRing))
	if next == ringTail.Get() {
		return // ring full, drop
	}
	eventRing[head] = ev
	ringHead.Set(next)
}

func flushEvents() {
	for ringTail.Get() != ringHead.Get() {
		tail := ringTail.Get()
		ev := eventRing[tail]
		ringTail.Set((tail + 1) % uint32(len(eventRing)))
		emitFrame(ev)
	}
}

func emitFrame(ev protocol.Event) {
	payload := protocol.AppendEvent(payloadBuf[:0], ev)
	frame, err := protocol.AppendFrame(frameBuf[:0], seq, payload)
	if err != nil {
		return
	}
	seq = (seq + 1) & protocol.SeqMask
	machine.Serial.Write(frame)
}
