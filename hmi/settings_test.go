package hmi

import (
	"errors"
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	p := DefaultPreferences()
	p.Brightness = 200
	p.ParkPoint = [3]float32{12.5, 220, 35}
	p.Colors[ColorText] = RGB(31, 0, 31)

	var buf [SettingsSize]byte
	if err := p.Encode(buf[:]); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf[0] != 'D' || buf[1] != SettingsVersion {
		t.Errorf("header %q %d", buf[0], buf[1])
	}

	var q Preferences
	if err := q.Decode(buf[:]); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if q != p {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", q, p)
	}
}

func TestSettingsDecodeErrors(t *testing.T) {
	good := DefaultPreferences()
	var blob [SettingsSize]byte
	good.Encode(blob[:])

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
		want   error
	}{
		{"short", func(b []byte) []byte { return b[:SettingsSize-1] }, ErrSettingsBuffer},
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrSettingsMagic},
		{"version", func(b []byte) []byte { b[1] = 9; return b }, ErrSettingsVersion},
		{"crc", func(b []byte) []byte { b[4]++; return b }, ErrSettingsCRC},
		{"erased", func(b []byte) []byte {
			for i := range b {
				b[i] = 0xFF
			}
			return b
		}, ErrSettingsMagic},
	}

	for _, tt := range tests {
		buf := blob
		p := Preferences{Brightness: 1}
		err := p.Decode(tt.mutate(buf[:]))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
		if p != (Preferences{Brightness: 1}) {
			t.Errorf("%s: failed decode modified preferences", tt.name)
		}
	}
}

func TestEncodeShortBuffer(t *testing.T) {
	p := DefaultPreferences()
	if err := p.Encode(make([]byte, 10)); !errors.Is(err, ErrSettingsBuffer) {
		t.Errorf("got %v", err)
	}
}

func TestSetColorDefaultsKeepsOtherPrefs(t *testing.T) {
	p := DefaultPreferences()
	p.Brightness = 5
	p.Colors[ColorCursor] = 0
	p.SetColorDefaults()
	if p.Brightness != 5 {
		t.Error("brightness reset")
	}
	if p.Colors[ColorCursor] != defaultColors[ColorCursor] {
		t.Error("palette not restored")
	}
}

func TestRGBSplit(t *testing.T) {
	c := RGB(17, 42, 3)
	r, g, b := SplitRGB(c)
	if r != 17 || g != 42 || b != 3 {
		t.Errorf("SplitRGB(%#x) = %d,%d,%d", c, r, g, b)
	}
}
