package protocol

import "testing"

func TestCRC16Empty(t *testing.T) {
	if crc := CRC16(nil); crc != 0xFFFF {
		t.Errorf("CRC16(empty) = 0x%04X, want 0xFFFF", crc)
	}
}

func TestCRC16Consistency(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	crc1 := CRC16(data)
	crc2 := CRC16(data)

	if crc1 != crc2 {
		t.Errorf("CRC16 not consistent: first=%04X, second=%04X", crc1, crc2)
	}
}

func TestCRC16DetectsSingleBitFlip(t *testing.T) {
	data := make([]byte, 60)
	for i := range data {
		data[i] = byte(i * 7)
	}
	base := CRC16(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			data[i] ^= 1 << bit
			if CRC16(data) == base {
				t.Fatalf("flip of byte %d bit %d not detected", i, bit)
			}
			data[i] ^= 1 << bit
		}
	}
}
