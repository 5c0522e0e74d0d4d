package protocol

import "testing"

func TestCRC16EmptyInput(t *testing.T) {
	if crc := CRC16(nil); crc != 0xFFFF {
		t.Errorf("CRC16(nil) = %#04x, want 0xffff", crc)
	}
}

func TestCRC16Consistency(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	if CRC16(data) != CRC16(data) {
		t.Error("CRC16 not deterministic")
	}
}

func TestCRC16Sensitivity(t *testing.T) {
	base := []byte{0x07, SeqBase, 0x03, 0x64, 0x00}

	ref := CRC16(base)
	for i := range base {
		mutated := append([]byte(nil), base...)
		mutated[i] ^= 0x01
		if CRC16(mutated) == ref {
			t.Errorf("single-bit flip at byte %d not detected", i)
		}
	}
}
