package protocol

import "errors"

// ErrTruncatedVLQ reports a VLQ whose continuation bytes run past the
// end of the payload.
var ErrTruncatedVLQ = errors.New("protocol: truncated VLQ")

// AppendVLQInt appends the Klipper variable-length encoding of v to dst
// and returns the extended slice. Values near zero take one byte; the
// widest values take five.
func AppendVLQInt(dst []byte, v int32) []byte {
	if !(-(1<<26) <= v && v < (3<<26)) {
		dst = append(dst, byte((v>>28)&0x7F)|0x80)
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		dst = append(dst, byte((v>>21)&0x7F)|0x80)
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		dst = append(dst, byte((v>>14)&0x7F)|0x80)
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		dst = append(dst, byte((v>>7)&0x7F)|0x80)
	}
	return append(dst, byte(v&0x7F))
}

// AppendVLQUint appends the VLQ encoding of v to dst.
func AppendVLQUint(dst []byte, v uint32) []byte {
	return AppendVLQInt(dst, int32(v))
}

// DecodeVLQInt decodes one VLQ integer from the front of data and
// returns the value and the remaining bytes.
func DecodeVLQInt(data []byte) (int32, []byte, error) {
	if len(data) == 0 {
		return 0, data, ErrTruncatedVLQ
	}

	c := uint32(data[0])
	data = data[1:]

	v := c & 0x7F
	// Sign-extend when the first byte's top payload bits signal a
	// negative value.
	if c&0x60 == 0x60 {
		v |= ^uint32(0x1F)
	}

	for c&0x80 != 0 {
		if len(data) == 0 {
			return 0, data, ErrTruncatedVLQ
		}
		c = uint32(data[0])
		data = data[1:]
		v = v<<7 | c&0x7F
	}

	return int32(v), data, nil
}

// DecodeVLQUint decodes one VLQ integer from the front of data as an
// unsigned value.
func DecodeVLQUint(data []byte) (uint32, []byte, error) {
	v, rest, err := DecodeVLQInt(data)
	return uint32(v), rest, err
}
