package protocol

import (
	"strings"
	"testing"
)

func TestEventRoundTrip(t *testing.T) {
	events := []Event{
		{Kind: EventHello, Ticks: 1000000},
		{Kind: EventArm, Ticks: 500},
		{Kind: EventArm, Ticks: 0},
		{Kind: EventExpire, ID: 3, Ticks: 0x7FFFFFFF},
		{Kind: EventIdle},
	}

	for _, ev := range events {
		payload := AppendEvent(nil, ev)
		got, err := DecodeEvent(payload)
		if err != nil {
			t.Errorf("%v: decode: %v", ev, err)
			continue
		}
		if got != ev {
			t.Errorf("round trip: want %+v, got %+v", ev, got)
		}
	}
}

func TestEventThroughFrame(t *testing.T) {
	ev := Event{Kind: EventExpire, ID: 12, Ticks: 34567}

	frame, err := AppendFrame(nil, 9, AppendEvent(nil, ev))
	if err != nil {
		t.Fatal(err)
	}

	dec := NewDecoder()
	payloads := dec.Feed(frame)
	if len(payloads) != 1 {
		t.Fatalf("decoded %d payloads", len(payloads))
	}
	got, err := DecodeEvent(payloads[0])
	if err != nil {
		t.Fatal(err)
	}
	if got != ev {
		t.Errorf("want %+v, got %+v", ev, got)
	}
}

func TestDecodeEventUnknownKind(t *testing.T) {
	payload := AppendVLQUint(nil, 200)
	if _, err := DecodeEvent(payload); err != ErrUnknownEvent {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestDecodeEventTruncated(t *testing.T) {
	// An expire event missing its tick field.
	payload := AppendVLQUint(nil, uint32(EventExpire))
	payload = AppendVLQUint(payload, 1)
	payload = payload[:len(payload)-1]

	if _, err := DecodeEvent(payload); err == nil {
		t.Error("truncated event decoded without error")
	}
}

func TestEventString(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{Event{Kind: EventHello, Ticks: 48000000}, "tick_rate=48000000"},
		{Event{Kind: EventArm, Ticks: 250}, "ticks=250"},
		{Event{Kind: EventArm}, "disarmed"},
		{Event{Kind: EventExpire, ID: 2, Ticks: 99}, "timer=2"},
		{Event{Kind: EventIdle}, "idle"},
	}
	for _, tc := range cases {
		if got := tc.ev.String(); !strings.Contains(got, tc.want) {
			t.Errorf("String() = %q, want it to contain %q", got, tc.want)
		}
	}
}
