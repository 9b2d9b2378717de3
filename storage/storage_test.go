package storage

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"

	"dwinhmi/hmi"
)

var _ drivers.I2C = (*fakeEEPROM)(nil)

// fakeEEPROM answers two-byte-addressed reads and writes like a 24C32
type fakeEEPROM struct {
	mem  [4096]byte
	ptr  uint16
	fail error
}

func newFakeEEPROM() *fakeEEPROM {
	f := &fakeEEPROM{}
	for i := range f.mem {
		f.mem[i] = 0xFF
	}
	return f
}

func (f *fakeEEPROM) Tx(addr uint16, w, r []byte) error {
	if f.fail != nil {
		return f.fail
	}
	if len(w) >= 2 {
		f.ptr = uint16(w[0])<<8 | uint16(w[1])
		for _, b := range w[2:] {
			f.mem[f.ptr%uint16(len(f.mem))] = b
			f.ptr++
		}
	}
	for i := range r {
		r[i] = f.mem[f.ptr%uint16(len(f.mem))]
		f.ptr++
	}
	return nil
}

func blob(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, hmi.SettingsSize)
	p := hmi.DefaultPreferences()
	p.Brightness = 42
	if err := p.Encode(buf); err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestEEPROMRoundTrip(t *testing.T) {
	bus := newFakeEEPROM()
	e := NewEEPROM(bus, 0x100)

	want := blob(t)
	if err := e.WriteSettings(want); err != nil {
		t.Fatal(err)
	}
	if bus.mem[0x100] != want[0] || bus.mem[0xFF] != 0xFF {
		t.Error("blob not placed at its offset")
	}

	got := make([]byte, len(want))
	if err := e.ReadSettings(got); err != nil {
		t.Fatal(err)
	}
	var p hmi.Preferences
	if err := p.Decode(got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Brightness != 42 {
		t.Errorf("brightness = %d", p.Brightness)
	}
}

func TestEEPROMErasedReadsAsInvalid(t *testing.T) {
	e := NewEEPROM(newFakeEEPROM(), 0)
	buf := make([]byte, hmi.SettingsSize)
	if err := e.ReadSettings(buf); err != nil {
		t.Fatal(err)
	}
	var p hmi.Preferences
	if err := p.Decode(buf); err == nil {
		t.Error("erased EEPROM decoded as valid settings")
	}
}

func TestEEPROMBusError(t *testing.T) {
	bus := newFakeEEPROM()
	e := NewEEPROM(bus, 0)
	bus.fail = errors.New("nack")
	if err := e.WriteSettings(blob(t)); !errors.Is(err, bus.fail) {
		t.Errorf("write error = %v", err)
	}
	if err := e.ReadSettings(make([]byte, 8)); !errors.Is(err, bus.fail) {
		t.Errorf("read error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	var m Memory
	buf := make([]byte, 4)
	if err := m.ReadSettings(buf); err != nil || buf[0] != 0xFF {
		t.Errorf("empty read = %v, %v", buf, err)
	}
	if err := m.WriteSettings([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := m.ReadSettings(buf); err != nil || buf[3] != 4 {
		t.Errorf("read = %v, %v", buf, err)
	}
}
