package hmi

import (
	"math"
	"testing"
)

func TestEditCancelLeavesPrinterUnchanged(t *testing.T) {
	probe := newHarness(t, CapAll)
	for _, step := range reachable(probe.c) {
		if probe.c.nodes[step.state].kind != kindEdit {
			continue
		}
		h := newHarness(t, CapAll)
		h.p.status.HotendTemp = 200
		for k := Setting(0); k <= SettingRunout; k++ {
			for i := 0; i < 4; i++ {
				h.p.settings[settingKey{k, i}] = 12
			}
		}
		for _, idx := range step.path {
			h.selectItem(idx)
		}
		before := h.p.snapshot()
		prefs := h.c.Prefs
		color := h.c.Value.Color

		h.c.HandleInput(InputRotateRight)
		h.c.HandleInput(InputRotateRight)
		h.c.SetEditValue(7)
		h.c.HandleInput(InputLongPress)

		if h.c.Current() == step.state {
			t.Errorf("%v: long press did not leave the edit", step.state)
		}
		after := h.p.snapshot()
		for k, v := range before {
			if after[k] != v {
				t.Errorf("%v: setting %v[%d] changed %v -> %v", step.state, k.s, k.i, v, after[k])
			}
		}
		if h.p.sets != 0 {
			t.Errorf("%v: %d printer writes on cancel", step.state, h.p.sets)
		}
		if h.c.Prefs != prefs {
			t.Errorf("%v: preferences changed on cancel", step.state)
		}
		if h.c.Value.Color != color {
			t.Errorf("%v: color scratch changed on cancel", step.state)
		}
	}
}

func TestEditCommitClampsToLimits(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name    string
		path    []ProcessID
		arg     int
		input   float64
		setting Setting
		index   int
		want    float64
	}{
		{"max speed X", []ProcessID{Control, Motion, MaxSpeed, MaxSpeedValue}, int(AxisX), 5000, SettingMaxFeedrate, 0, cfg.MaxFeedrate[AxisX].Max},
		{"max accel Z low", []ProcessID{Control, Motion, MaxAcceleration, MaxAccelerationValue}, int(AxisZ), -3, SettingMaxAccel, 2, cfg.MaxAccel[AxisZ].Min},
		{"hotend", []ProcessID{Control, TemperatureID, ETemp}, -1, 999, SettingHotendTarget, 0, cfg.HotendTemp.Max},
		{"z offset", []ProcessID{Prepare, Zoffset}, -1, -9.5, SettingZOffset, 0, cfg.ZOffset.Min},
		{"flow", []ProcessID{Control, Motion, PrintFlow}, -1, 2000, SettingFlow, 0, cfg.PrintFlow.Max},
		{"move y", []ProcessID{Prepare, AxisMove, MoveY}, -1, 400, SettingPosition, int(AxisY), cfg.Move[AxisY].Max},
	}

	for _, tt := range tests {
		h := newHarness(t, CapAll)
		for i, p := range tt.path {
			if i == len(tt.path)-1 {
				h.openArg(p, tt.arg)
			} else {
				h.open(p)
			}
		}
		h.c.SetEditValue(tt.input)
		h.c.HandleInput(InputClick)
		if got := h.p.Setting(tt.setting, tt.index); got != tt.want {
			t.Errorf("%s: stored %v, want %v", tt.name, got, tt.want)
		}
		if h.c.Current() != tt.path[len(tt.path)-2] {
			t.Errorf("%s: after confirm in %v", tt.name, h.c.Current())
		}
	}
}

func TestEditRotateSteps(t *testing.T) {
	h := newHarness(t, CapAll)
	h.p.settings[settingKey{SettingZOffset, 0}] = -4.98
	h.open(Prepare)
	h.open(Zoffset)
	for i := 0; i < 5; i++ {
		h.c.HandleInput(InputRotateLeft)
	}
	if v, _ := h.c.EditValue(); v != -5 {
		t.Errorf("rotate past minimum gave %v", v)
	}
	h.c.HandleInput(InputRotateRight)
	if v, _ := h.c.EditValue(); v != -4.99 {
		t.Errorf("one detent gave %v, want -4.99", v)
	}
}

func TestTemperatureEditTargetsPreset(t *testing.T) {
	h := newHarness(t, CapAll)
	h.p.settings[settingKey{SettingPresetHotend, 1}] = 240
	h.open(Control)
	h.open(TemperatureID)
	h.open(ABSPreheat)
	h.open(ETemp)
	if v, _ := h.c.EditValue(); v != 240 {
		t.Fatalf("ABS preset snapshot %v", v)
	}
	h.c.HandleInput(InputRotateRight)
	h.c.HandleInput(InputClick)
	if got := h.p.Setting(SettingPresetHotend, 1); got != 241 {
		t.Errorf("ABS preset %v, want 241", got)
	}
	if got := h.p.Setting(SettingHotendTarget, 0); got != 0 {
		t.Errorf("live target touched: %v", got)
	}
	if h.c.Current() != ABSPreheat {
		t.Errorf("expected ABSPreheat, got %v", h.c.Current())
	}
}

func TestSharedEditReturnsToCaller(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.PrintStarted(true)
	h.open(Tune)
	h.open(Zoffset)
	h.c.HandleInput(InputLongPress)
	if h.c.Current() != Tune {
		t.Errorf("expected Tune, got %v", h.c.Current())
	}
	if h.c.Value.ShowMode != ShowTune {
		t.Errorf("ShowMode %d", h.c.Value.ShowMode)
	}
}

func TestBrightnessEditAppliesToDisplay(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Control)
	h.open(AdvSet)
	h.open(Brightness)
	h.c.SetEditValue(60)
	h.c.HandleInput(InputClick)
	if h.c.Prefs.Brightness != 60 || h.d.brightness != 60 {
		t.Errorf("brightness prefs %d display %d", h.c.Prefs.Brightness, h.d.brightness)
	}
}

func TestNaNEditKeepsValue(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Control)
	h.open(AdvSet)
	h.open(Brightness)
	before := h.c.Prefs.Brightness
	h.c.SetEditValue(math.NaN())
	h.c.HandleInput(InputClick)
	if h.c.Prefs.Brightness != before {
		t.Errorf("brightness after NaN confirm = %d, want %d", h.c.Prefs.Brightness, before)
	}
	if h.c.Current() != AdvSet {
		t.Errorf("confirm left edit for %v", h.c.Current())
	}
}

func TestClampNaN(t *testing.T) {
	l := Limits{Min: 10, Max: 20}
	for _, tt := range []struct {
		in, want float64
	}{
		{math.NaN(), 10},
		{math.Inf(1), 20},
		{math.Inf(-1), 10},
		{15, 15},
	} {
		if got := l.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetEditValueOutsideEdit(t *testing.T) {
	h := newHarness(t, CapAll)
	if h.c.SetEditValue(1) {
		t.Error("SetEditValue accepted on a menu")
	}
}
