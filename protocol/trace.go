package protocol

import (
	"errors"
	"fmt"
)

// EventKind discriminates trace events.
type EventKind uint8

const (
	// EventHello opens a trace stream: announces the device's tick
	// rate so the host can convert ticks to wall time.
	EventHello EventKind = 1
	// EventArm reports the countdown programmed into the physical
	// timer; zero means disarmed.
	EventArm EventKind = 2
	// EventExpire reports one logical timer expiry.
	EventExpire EventKind = 3
	// EventIdle reports that the schedule drained empty.
	EventIdle EventKind = 4
)

// ErrUnknownEvent reports a payload whose kind byte is not a known
// trace event.
var ErrUnknownEvent = errors.New("protocol: unknown trace event")

// Event is one scheduler trace record.
type Event struct {
	Kind EventKind

	// ID names the logical timer (EventExpire).
	ID uint32

	// Ticks carries the kind-specific tick value: tick rate in Hz for
	// EventHello, countdown for EventArm, expiry instant in the
	// device's shared timeline for EventExpire. Unused for EventIdle.
	Ticks uint32
}

// AppendEvent appends the payload encoding of ev to dst. The result is
// the payload for one frame; see AppendFrame.
func AppendEvent(dst []byte, ev Event) []byte {
	dst = AppendVLQUint(dst, uint32(ev.Kind))
	switch ev.Kind {
	case EventHello, EventArm:
		dst = AppendVLQUint(dst, ev.Ticks)
	case EventExpire:
		dst = AppendVLQUint(dst, ev.ID)
		dst = AppendVLQUint(dst, ev.Ticks)
	}
	return dst
}

// DecodeEvent decodes one event from a frame payload.
func DecodeEvent(payload []byte) (Event, error) {
	kind, rest, err := DecodeVLQUint(payload)
	if err != nil {
		return Event{}, err
	}

	ev := Event{Kind: EventKind(kind)}
	switch ev.Kind {
	case EventHello, EventArm:
		ev.Ticks, _, err = DecodeVLQUint(rest)
	case EventExpire:
		ev.ID, rest, err = DecodeVLQUint(rest)
		if err == nil {
			ev.Ticks, _, err = DecodeVLQUint(rest)
		}
	case EventIdle:
	default:
		return Event{}, ErrUnknownEvent
	}
	return ev, err
}

// String renders the event the way the host CLI prints it.
func (ev Event) String() string {
	switch ev.Kind {
	case EventHello:
		return fmt.Sprintf("hello tick_rate=%d", ev.Ticks)
	case EventArm:
		if ev.Ticks == 0 {
			return "arm disarmed"
		}
		return fmt.Sprintf("arm ticks=%d", ev.Ticks)
	case EventExpire:
		return fmt.Sprintf("expire timer=%d at=%d", ev.ID, ev.Ticks)
	case EventIdle:
		return "idle"
	default:
		return fmt.Sprintf("unknown kind=%d", uint8(ev.Kind))
	}
}
