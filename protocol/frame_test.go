package protocol

import (
	"bytes"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}

	frame, err := AppendFrame(nil, 5, payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame) != FrameHeaderSize+len(payload)+FrameTrailerSize {
		t.Fatalf("frame length %d", len(frame))
	}
	if frame[FramePosLen] != byte(len(frame)) {
		t.Error("length byte wrong")
	}
	if frame[FramePosSeq] != SeqBase|5 {
		t.Error("sequence byte wrong")
	}
	if frame[len(frame)-1] != SyncByte {
		t.Error("missing trailing sync byte")
	}

	dec := NewDecoder()
	payloads := dec.Feed(frame)
	if len(payloads) != 1 || !bytes.Equal(payloads[0], payload) {
		t.Fatalf("decoded payloads = %v", payloads)
	}
	if dec.LastSeq != 5 {
		t.Errorf("LastSeq = %d, want 5", dec.LastSeq)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	frame, err := AppendFrame(nil, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	dec := NewDecoder()
	payloads := dec.Feed(frame)
	if len(payloads) != 1 || len(payloads[0]) != 0 {
		t.Fatalf("decoded payloads = %v", payloads)
	}
}

func TestFramePayloadTooLarge(t *testing.T) {
	big := make([]byte, FrameLengthMax)
	if _, err := AppendFrame(nil, 0, big); err != ErrPayloadTooLarge {
		t.Errorf("err = %v, want ErrPayloadTooLarge", err)
	}
}

func TestDecoderByteAtATime(t *testing.T) {
	var stream []byte
	var err error
	for i := 0; i < 3; i++ {
		stream, err = AppendFrame(stream, uint8(i), []byte{byte(10 + i)})
		if err != nil {
			t.Fatal(err)
		}
	}

	dec := NewDecoder()
	var got [][]byte
	for _, b := range stream {
		got = append(got, dec.Feed([]byte{b})...)
	}
	if len(got) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(got))
	}
	for i, payload := range got {
		if len(payload) != 1 || payload[0] != byte(10+i) {
			t.Errorf("frame %d payload = % x", i, payload)
		}
	}
}

func TestDecoderResyncAfterGarbage(t *testing.T) {
	frame, _ := AppendFrame(nil, 1, []byte{0x42})

	// Garbage, then the sync byte that lets the decoder relock.
	stream := append([]byte{0x00, 0x13, 0x99, SyncByte}, frame...)
	dec := NewDecoder()
	payloads := dec.Feed(stream)

	if len(payloads) != 1 || payloads[0][0] != 0x42 {
		t.Fatalf("payloads = %v", payloads)
	}
	if dec.Dropped == 0 {
		t.Error("garbage should have been counted as dropped")
	}
}

func TestDecoderRejectsCorruptCRC(t *testing.T) {
	good, _ := AppendFrame(nil, 2, []byte{0x01, 0x02})
	bad := append([]byte(nil), good...)
	bad[FrameHeaderSize] ^= 0xFF // flip a payload byte, CRC now stale

	follow, _ := AppendFrame(nil, 3, []byte{0x55})

	dec := NewDecoder()
	payloads := dec.Feed(append(bad, follow...))

	if len(payloads) != 1 || payloads[0][0] != 0x55 {
		t.Fatalf("payloads = %v, want only the frame after the corrupt one", payloads)
	}
	if dec.Dropped == 0 {
		t.Error("corrupt frame not counted as dropped")
	}
}

func TestDecoderSkipsInterFrameSync(t *testing.T) {
	frame, _ := AppendFrame(nil, 4, []byte{0x11})
	stream := append([]byte{SyncByte, SyncByte}, frame...)

	dec := NewDecoder()
	payloads := dec.Feed(stream)
	if len(payloads) != 1 || payloads[0][0] != 0x11 {
		t.Fatalf("payloads = %v", payloads)
	}
}
