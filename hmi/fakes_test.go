package hmi

import (
	"errors"
	"strings"
	"testing"
)

type recordingDisplay struct {
	strings    []string
	clears     int
	fills      int
	icons      int
	updates    int
	brightness uint8
	failUpdate bool
}

func (d *recordingDisplay) Clear(color uint16)                          { d.clears++ }
func (d *recordingDisplay) FillRect(x, y, w, h int16, color uint16)     { d.fills++ }
func (d *recordingDisplay) DrawLine(x0, y0, x1, y1 int16, color uint16) {}
func (d *recordingDisplay) DrawString(size FontSize, fg, bg uint16, x, y int16, text string) {
	d.strings = append(d.strings, text)
}
func (d *recordingDisplay) DrawFloat(size FontSize, fg, bg uint16, iNum, fNum uint8, x, y int16, value float64) {
	d.strings = append(d.strings, FormatFixed(value, fNum))
}
func (d *recordingDisplay) DrawIcon(lib, icon uint8, x, y int16) { d.icons++ }
func (d *recordingDisplay) SetBrightness(level uint8)            { d.brightness = level }
func (d *recordingDisplay) Update() error {
	d.updates++
	if d.failUpdate {
		return errors.New("bus error")
	}
	return nil
}

func (d *recordingDisplay) reset() {
	d.strings = nil
}

func (d *recordingDisplay) drew(sub string) bool {
	for _, s := range d.strings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type settingKey struct {
	s Setting
	i int
}

type actionCall struct {
	a   Action
	arg int
}

type fakePrinter struct {
	status   Status
	settings map[settingKey]float64
	actions  []actionCall
	sets     int
	files    []string
	err      error
}

func newFakePrinter() *fakePrinter {
	return &fakePrinter{
		status:   Status{Feedrate: 100, Flow: 100, MediaInserted: true},
		settings: map[settingKey]float64{},
		files:    []string{"cube.gcode", "benchy.gcode"},
	}
}

func (p *fakePrinter) Status() Status { return p.status }
func (p *fakePrinter) Setting(s Setting, index int) float64 {
	return p.settings[settingKey{s, index}]
}
func (p *fakePrinter) SetSetting(s Setting, index int, v float64) {
	p.sets++
	p.settings[settingKey{s, index}] = v
}
func (p *fakePrinter) Do(a Action, arg int) error {
	p.actions = append(p.actions, actionCall{a, arg})
	return p.err
}
func (p *fakePrinter) Files() []string { return p.files }

func (p *fakePrinter) snapshot() map[settingKey]float64 {
	m := make(map[settingKey]float64, len(p.settings))
	for k, v := range p.settings {
		m[k] = v
	}
	return m
}

func (p *fakePrinter) did(a Action) bool {
	for _, call := range p.actions {
		if call.a == a {
			return true
		}
	}
	return false
}

type memStore struct {
	blob   [SettingsSize]byte
	writes int
	err    error
}

func (s *memStore) ReadSettings(buf []byte) error {
	if s.err != nil {
		return s.err
	}
	copy(buf, s.blob[:])
	return nil
}

func (s *memStore) WriteSettings(buf []byte) error {
	if s.err != nil {
		return s.err
	}
	s.writes++
	copy(s.blob[:], buf)
	return nil
}

type fakeBuzzer struct {
	tones []uint16
}

func (b *fakeBuzzer) Tone(freqHz, durationMs uint16) { b.tones = append(b.tones, freqHz) }

type scriptedInput struct {
	pending []Input
}

func (s *scriptedInput) ReadInput(nowMs uint32) Input {
	if len(s.pending) == 0 {
		return InputNone
	}
	in := s.pending[0]
	s.pending = s.pending[1:]
	return in
}

type harness struct {
	t *testing.T
	c *Controller
	d *recordingDisplay
	p *fakePrinter
	s *memStore
	b *fakeBuzzer
}

func newHarness(t *testing.T, caps Capabilities) *harness {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Capabilities = caps
	h := &harness{t: t, d: &recordingDisplay{}, p: newFakePrinter(), s: &memStore{}, b: &fakeBuzzer{}}
	h.c = New(cfg, h.d, h.p)
	h.c.SetBuzzer(h.b)
	h.c.SetSettingsStore(h.s)
	h.c.Init(0)
	return h
}

// selectItem moves the cursor to idx with the encoder and clicks
func (h *harness) selectItem(idx int) {
	h.t.Helper()
	for i := 0; h.c.cursor < idx && i < 100; i++ {
		h.c.HandleInput(InputRotateRight)
	}
	for i := 0; h.c.cursor > idx && i < 100; i++ {
		h.c.HandleInput(InputRotateLeft)
	}
	if h.c.cursor != idx {
		h.t.Fatalf("cursor stuck at %d, want %d in %v", h.c.cursor, idx, h.c.current)
	}
	h.c.HandleInput(InputClick)
}

// open follows the item of the current menu that leads to target
func (h *harness) open(target ProcessID) {
	h.t.Helper()
	h.openArg(target, -1)
}

func (h *harness) openArg(target ProcessID, arg int) {
	h.t.Helper()
	n := h.c.nodes[h.c.current]
	for i, it := range n.items {
		if it.target == target && (arg < 0 || it.arg == arg) {
			h.selectItem(i)
			if h.c.current != target {
				h.t.Fatalf("expected %v after selecting item %d, got %v", target, i, h.c.current)
			}
			return
		}
	}
	h.t.Fatalf("no item for %v in %v", target, h.c.current)
}
