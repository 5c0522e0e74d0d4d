package protocol

import "errors"

// ErrPayloadTooLarge reports a payload that cannot fit in one frame.
var ErrPayloadTooLarge = errors.New("protocol: payload too large for frame")

// AppendFrame appends a complete frame carrying payload to dst:
// length, sequence byte, payload, CRC-16 of everything before the
// trailer, and the sync byte. seq is masked into the low nibble of the
// sequence byte.
func AppendFrame(dst []byte, seq uint8, payload []byte) ([]byte, error) {
	total := FrameHeaderSize + len(payload) + FrameTrailerSize
	if total > FrameLengthMax {
		return dst, ErrPayloadTooLarge
	}

	start := len(dst)
	dst = append(dst, byte(total), SeqBase|seq&SeqMask)
	dst = append(dst, payload...)
	crc := CRC16(dst[start : start+FrameHeaderSize+len(payload)])
	dst = append(dst, byte(crc>>8), byte(crc), SyncByte)
	return dst, nil
}

// Decoder reassembles frames from a byte stream and hands back their
// payloads. Any framing violation (bad length, bad sequence byte, CRC
// mismatch, missing sync) drops the decoder out of sync; it then
// discards bytes until the next sync byte, the same recovery discipline
// Klipper hosts use.
type Decoder struct {
	buf    []byte
	synced bool
	// Sequence low nibble of the most recent good frame, for gap
	// detection by the caller.
	LastSeq uint8
	// Dropped counts frames lost to desync or CRC failures, best
	// effort.
	Dropped int
}

// NewDecoder returns a Decoder that treats the stream as synchronized
// from the first byte.
func NewDecoder() *Decoder {
	return &Decoder{synced: true}
}

// Feed consumes data and returns the payloads of every complete, valid
// frame it reassembled. Returned slices are copies and remain valid
// after the next Feed.
func (d *Decoder) Feed(data []byte) [][]byte {
	d.buf = append(d.buf, data...)

	var payloads [][]byte
	for {
		if !d.synced {
			i := indexByte(d.buf, SyncByte)
			if i < 0 {
				d.buf = d.buf[:0]
				return payloads
			}
			d.buf = d.buf[i+1:]
			d.synced = true
		}

		// Skip inter-frame sync bytes.
		for len(d.buf) > 0 && d.buf[0] == SyncByte {
			d.buf = d.buf[1:]
		}
		if len(d.buf) < FrameLengthMin {
			return payloads
		}

		total := int(d.buf[FramePosLen])
		if total < FrameLengthMin || total > FrameLengthMax {
			d.desync()
			continue
		}
		if d.buf[FramePosSeq]&^SeqMask != SeqBase {
			d.desync()
			continue
		}
		if len(d.buf) < total {
			return payloads
		}

		frame := d.buf[:total]
		if frame[total-1] != SyncByte {
			d.desync()
			continue
		}
		want := uint16(frame[total-FrameTrailerSize])<<8 | uint16(frame[total-FrameTrailerSize+1])
		if CRC16(frame[:total-FrameTrailerSize]) != want {
			d.desync()
			continue
		}

		payload := make([]byte, total-FrameHeaderSize-FrameTrailerSize)
		copy(payload, frame[FrameHeaderSize:total-FrameTrailerSize])
		payloads = append(payloads, payload)
		d.LastSeq = frame[FramePosSeq] & SeqMask
		d.buf = d.buf[total:]
	}
}

func (d *Decoder) desync() {
	d.synced = false
	d.Dropped++
	// Drop the first byte so the resync scan cannot relock on the
	// same spot.
	d.buf = d.buf[1:]
}

func indexByte(b []byte, c byte) int {
	for i := range b {
		if b[i] == c {
			return i
		}
	}
	return -1
}
