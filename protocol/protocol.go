// Package protocol implements the tickmux trace wire format: a one-way
// stream of framed scheduler events from a device to a host. Frames use
// the Klipper message-block layout (length, sequence, payload, CRC-16,
// sync byte) with VLQ-encoded integers in the payload.
package protocol

// Version identifies the trace stream format.
const Version = "0.1.0"

// Frame layout constants.
const (
	FrameHeaderSize  = 2 // length + sequence
	FrameTrailerSize = 3 // CRC-16 (big endian) + sync
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64

	FramePosLen = 0
	FramePosSeq = 1

	// SyncByte terminates every frame and is the resynchronization
	// marker after stream corruption.
	SyncByte = 0x7E

	// Sequence byte layout: high nibble fixed, low nibble counts.
	SeqMask = 0x0F
	SeqBase = 0x10
)
