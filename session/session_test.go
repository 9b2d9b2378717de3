package session

import (
	"testing"

	"dwinhmi/hmi"
	"dwinhmi/storage"
)

type countingDisplay struct{ updates int }

func (*countingDisplay) Clear(uint16)                                                  {}
func (*countingDisplay) FillRect(x, y, w, h int16, color uint16)                       {}
func (*countingDisplay) DrawLine(x0, y0, x1, y1 int16, color uint16)                   {}
func (*countingDisplay) DrawString(hmi.FontSize, uint16, uint16, int16, int16, string) {}
func (*countingDisplay) DrawFloat(hmi.FontSize, uint16, uint16, uint8, uint8, int16, int16, float64) {
}
func (*countingDisplay) DrawIcon(lib, icon uint8, x, y int16) {}
func (*countingDisplay) SetBrightness(uint8)                  {}
func (d *countingDisplay) Update() error                      { d.updates++; return nil }

func TestSessionBoots(t *testing.T) {
	d := &countingDisplay{}
	s, err := New(Options{Display: d}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Tick(10); err != nil {
		t.Fatal(err)
	}
	if s.Controller.Current() != hmi.MainMenu {
		t.Errorf("boot screen = %v", s.Controller.Current())
	}
	if d.updates == 0 {
		t.Error("nothing presented")
	}
	if got := string(s.Output()); got != "start\n" {
		t.Errorf("printer output = %q", got)
	}
}

func TestSessionReboot(t *testing.T) {
	store := &storage.Memory{}
	s, err := New(Options{Display: &countingDisplay{}, Store: store}, 0)
	if err != nil {
		t.Fatal(err)
	}
	s.Controller.Prefs.Brightness = 33
	if err := s.Controller.SaveSettings(); err != nil {
		t.Fatal(err)
	}
	old := s.Printer

	if err := s.Printer.Do(hmi.ActReboot, 0); err != nil {
		t.Fatal(err)
	}
	now := uint32(0)
	for i := 0; i < 100 && s.Reboots == 0; i++ {
		now += 100
		if err := s.Tick(now); err != nil {
			t.Fatal(err)
		}
	}
	if s.Reboots != 1 {
		t.Fatal("session never rebooted")
	}
	if now < RebootDelayMs {
		t.Errorf("rebooted after %dms", now)
	}
	if s.Printer == old {
		t.Error("printer not rebuilt")
	}
	if s.Controller.Current() != hmi.MainMenu {
		t.Errorf("after reboot at %v", s.Controller.Current())
	}
	if s.Controller.Prefs.Brightness != 33 {
		t.Errorf("preferences not restored: brightness %d", s.Controller.Prefs.Brightness)
	}
}

func TestSessionKeepsHMIConfig(t *testing.T) {
	cfg := hmi.DefaultConfig()
	cfg.Capabilities = hmi.CapAll &^ hmi.CapFan
	cfg.HotendTemp.Max = 250
	cfg.RefreshMs = 0

	s, err := New(Options{HMI: cfg, Display: &countingDisplay{}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := s.Controller.Config()
	if got.Capabilities != cfg.Capabilities || got.HotendTemp.Max != 250 {
		t.Errorf("config replaced: caps %b, hotend max %v", got.Capabilities, got.HotendTemp.Max)
	}
	if got.RefreshMs == 0 {
		t.Error("refresh period left at zero")
	}
	if s.Controller.Supports(hmi.FanSpeed) {
		t.Error("fan screen built without a fan")
	}
}
