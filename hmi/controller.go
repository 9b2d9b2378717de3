package hmi

import "errors"

var (
	ErrUnknownState     = errors.New("hmi: unknown process id")
	ErrUnsupportedState = errors.New("hmi: state not supported by this build")
	ErrKilled           = errors.New("hmi: printer killed")
	ErrNoSettingsStore  = errors.New("hmi: no settings store")
)

const (
	maxInputsPerPoll = 4
	beepGapMs        = 120
)

type progressState struct {
	active    bool
	percent   uint8
	elapsed   uint32 // seconds
	remaining uint32 // seconds, advisory
}

type meshState struct {
	x, y   int32
	z      float64
	points uint16
}

// Stats counts controller activity for diagnostics
type Stats struct {
	Inputs       uint32
	Events       uint32
	Dropped      uint32 // events lost to a full queue
	Stale        uint32 // events that no longer applied
	Redraws      uint32
	UpdateErrors uint32
}

type tone struct {
	freq, ms uint16
}

// Controller owns the UI state: the Process ID state machine, the Value
// and Preference models and the session flags. Every method must be
// called from the loop that calls Poll.
type Controller struct {
	Value Value
	Prefs Preferences
	Flags Flags
	Stats Stats

	cfg     Config
	caps    Capabilities
	display Display
	printer Printer
	input   InputSource
	buzzer  Buzzer
	store   SettingsStore

	nodes [NumProcesses]*node

	current ProcessID
	saved   ProcessID // menu or edit screen beneath the active popup
	under   ProcessID // popup interrupted by the active one, or noState
	via     ProcessID // parent of the active shared edit screen
	cursor  int
	top     int

	edit    editState
	editing bool

	colorIndex   int
	colorChannel int
	files        []string

	popup     popupState
	progress  progressState
	mesh      meshState
	status    string
	header    string
	rebooting bool

	queue       eventQueue
	pendingKill *Event

	timerList    *Timer
	refreshTimer Timer
	clockTimer   Timer
	beepTimer    Timer
	beeps        [4]tone
	beepCount    int

	now      uint32
	readouts readoutCache
	dirty    bool
}

// New creates a controller. Display and printer are required.
func New(cfg Config, display Display, printer Printer) *Controller {
	if display == nil {
		panic("hmi: display is nil")
	}
	if printer == nil {
		panic("hmi: printer is nil")
	}
	if cfg.RefreshMs == 0 {
		cfg.RefreshMs = 1000
	}
	c := &Controller{
		cfg:     cfg,
		caps:    cfg.Capabilities,
		display: display,
		printer: printer,
	}
	c.refreshTimer.Handler = c.refreshEvent
	c.clockTimer.Handler = c.clockEvent
	c.beepTimer.Handler = c.beepEvent
	c.buildTable()
	c.reset()
	return c
}

// SetInputSource attaches the encoder
func (c *Controller) SetInputSource(in InputSource) { c.input = in }

// SetBuzzer attaches the beeper used for audio feedback
func (c *Controller) SetBuzzer(b Buzzer) { c.buzzer = b }

// SetSettingsStore attaches durable storage for the preference blob
func (c *Controller) SetSettingsStore(s SettingsStore) { c.store = s }

// Config returns the configuration the controller was built with
func (c *Controller) Config() Config { return c.cfg }

func (c *Controller) reset() {
	c.Value = DefaultValue()
	c.Prefs = DefaultPreferences()
	c.Flags.Reset()
	c.current = MainMenu
	c.saved = MainMenu
	c.under = noState
	c.via = MainMenu
	c.cursor, c.top = 0, 0
	c.editing = false
	c.popup = popupState{}
	c.progress = progressState{}
	c.mesh = meshState{}
	c.status, c.header = "", ""
	c.rebooting = false
	c.queue = eventQueue{}
	c.pendingKill = nil
	c.timerList = nil
	c.beepCount = 0
	c.readouts = readoutCache{}
}

// Init resets the controller, restores preferences from the settings
// store and draws the main menu. A failed restore keeps the defaults and
// is returned.
func (c *Controller) Init(nowMs uint32) error {
	c.reset()
	c.now = nowMs
	var err error
	if c.store != nil {
		if err = c.RestoreSettings(); err != nil {
			c.Prefs = DefaultPreferences()
			c.Debug("settings restore failed: " + err.Error())
		}
	}
	c.display.SetBrightness(c.Prefs.Brightness)

	c.refreshTimer.WakeTime = nowMs + c.cfg.RefreshMs
	c.ScheduleTimer(&c.refreshTimer)
	c.clockTimer.WakeTime = nowMs + 1000
	c.ScheduleTimer(&c.clockTimer)

	c.RedrawScreen()
	return err
}

// Current returns the active Process ID
func (c *Controller) Current() ProcessID {
	return c.current
}

// Saved returns the state the active popup returns to
func (c *Controller) Saved() ProcessID {
	return c.returnTarget()
}

// Cursor returns the selected line of the active menu
func (c *Controller) Cursor() int {
	return c.cursor
}

// Supports reports whether state p exists in this build
func (c *Controller) Supports(p ProcessID) bool {
	return c.node(p) != nil
}

// Progress returns the print progress shown on the print screen
func (c *Controller) Progress() (percent uint8, elapsed, remaining uint32) {
	return c.progress.percent, c.progress.elapsed, c.progress.remaining
}

// StatusText returns the last status line message
func (c *Controller) StatusText() string {
	return c.status
}

// TransitionTo makes p the active state and runs its entry actions
func (c *Controller) TransitionTo(p ProcessID) error {
	if c.current == Killed {
		return ErrKilled
	}
	if p >= NumProcesses {
		return ErrUnknownState
	}
	if c.nodes[p] == nil {
		return ErrUnsupportedState
	}
	c.transition(p)
	return nil
}

func (c *Controller) transition(p ProcessID) {
	from := c.current
	n := c.nodes[p]
	if c.editing && p != from {
		c.cancelEdit()
	}
	switch {
	case !p.IsPopup():
		c.under = noState
	case !from.IsPopup():
		c.saved = from
		c.under = noState
	case p == c.under:
		c.under = noState
	case from != p && from != Killed && p != Killed:
		c.interrupt(from)
	}
	c.current = p
	if from != p {
		c.Debug(from.String() + " -> " + p.String())
	}

	if n.enter != nil {
		n.enter(c, from)
	}
	switch n.kind {
	case kindMenu:
		if !from.IsPopup() || p != c.saved {
			c.cursor = c.cursorFor(n, from)
		}
		if c.cursor >= c.itemCount(n) {
			c.cursor = 0
		}
		c.scrollToCursor()
	case kindEdit:
		c.beginEdit(n.edit)
	case kindPopup:
		c.popup.sel = 0
		c.Flags.Set(FlagSelect, false)
	}
	c.RedrawScreen()
}

// interrupt remembers the popup p covers so closing p returns to it. Only
// one popup is remembered; a homing popup pushed out of the slot ends the
// homing display.
func (c *Controller) interrupt(from ProcessID) {
	if c.under == Homing {
		c.Flags.Set(FlagHome, false)
	}
	c.under = from
}

// cursorFor puts the cursor on the item that leads back to from, or on
// the first line when entering fresh
func (c *Controller) cursorFor(n *node, from ProcessID) int {
	if n.id == SelectFile {
		return 0
	}
	arg := c.selectedArg(from)
	fallback := -1
	for i, it := range n.items {
		if it.target != from || it.cmd == cmdAction || it.cmd == cmdBack {
			continue
		}
		if it.arg == arg {
			return i
		}
		if fallback < 0 {
			fallback = i
		}
	}
	if fallback >= 0 {
		return fallback
	}
	return 0
}

func (c *Controller) scrollToCursor() {
	if c.cursor < c.top {
		c.top = c.cursor
	}
	if c.cursor >= c.top+menuLines {
		c.top = c.cursor - menuLines + 1
	}
	if c.top < 0 {
		c.top = 0
	}
}

// Back returns to the parent of the active state, discarding any edit.
// From MainMenu it does nothing.
func (c *Controller) Back() {
	if c.current == Killed {
		return
	}
	if c.current.IsPopup() {
		c.popupCancel()
		return
	}
	c.cancelEdit()
	p := c.parentOf(c.current)
	if p == noParent || c.node(p) == nil {
		return
	}
	c.transition(p)
}

// enterChild follows a menu item into target
func (c *Controller) enterChild(target ProcessID) {
	n := c.node(target)
	if n == nil {
		return
	}
	if n.parent == viaParent {
		c.via = c.current
	}
	c.transition(target)
}

// Poll services encoder input, queued bridge events, timers and the
// display, in that order. Call it from the main loop.
func (c *Controller) Poll(nowMs uint32) {
	c.now = nowMs

	if c.input != nil {
		for i := 0; i < maxInputsPerPoll; i++ {
			in := c.input.ReadInput(nowMs)
			if in == InputNone {
				break
			}
			c.HandleInput(in)
		}
	}

	if ev := c.pendingKill; ev != nil {
		c.pendingKill = nil
		c.dispatch(ev)
	}
	for i := 0; i < eventQueueSize; i++ {
		ev, ok := c.queue.pop()
		if !ok {
			break
		}
		c.dispatch(&ev)
	}

	c.timerDispatch(nowMs)

	if c.dirty {
		c.dirty = false
		if err := c.display.Update(); err != nil {
			c.Stats.UpdateErrors++
			c.Debug("display update: " + err.Error())
		}
	}
}

// StoreSettings serializes the preferences into buf
func (c *Controller) StoreSettings(buf []byte) error {
	return c.Prefs.Encode(buf)
}

// LoadSettings replaces the preferences from buf. An invalid blob leaves
// them untouched.
func (c *Controller) LoadSettings(buf []byte) error {
	if err := c.Prefs.Decode(buf); err != nil {
		return err
	}
	c.display.SetBrightness(c.Prefs.Brightness)
	return nil
}

// ResetDefaults restores the compiled-in preferences
func (c *Controller) ResetDefaults() {
	c.Prefs = DefaultPreferences()
	c.display.SetBrightness(c.Prefs.Brightness)
	c.RedrawScreen()
}

// SetColorDefaults restores only the palette
func (c *Controller) SetColorDefaults() {
	c.Prefs.SetColorDefaults()
	c.RedrawScreen()
}

// SaveSettings writes the preferences to the settings store
func (c *Controller) SaveSettings() error {
	if c.store == nil {
		return ErrNoSettingsStore
	}
	var buf [SettingsSize]byte
	if err := c.StoreSettings(buf[:]); err != nil {
		return err
	}
	return c.store.WriteSettings(buf[:])
}

// RestoreSettings reads the preferences from the settings store
func (c *Controller) RestoreSettings() error {
	if c.store == nil {
		return ErrNoSettingsStore
	}
	var buf [SettingsSize]byte
	if err := c.store.ReadSettings(buf[:]); err != nil {
		return err
	}
	return c.LoadSettings(buf[:])
}

// AudioFeedback beeps once for success and three times for failure
func (c *Controller) AudioFeedback(success bool) {
	if c.buzzer == nil {
		return
	}
	if success {
		c.playTones(tone{3000, 100})
	} else {
		c.playTones(tone{1000, 100}, tone{1000, 100}, tone{1000, 100})
	}
}

func (c *Controller) playTones(tones ...tone) {
	c.beepCount = copy(c.beeps[:], tones)
	c.beepTimer.WakeTime = c.now
	c.ScheduleTimer(&c.beepTimer)
}

func (c *Controller) beepEvent(t *Timer) uint8 {
	if c.beepCount == 0 {
		return SF_DONE
	}
	b := c.beeps[0]
	copy(c.beeps[:], c.beeps[1:c.beepCount])
	c.beepCount--
	c.buzzer.Tone(b.freq, b.ms)
	if c.beepCount == 0 {
		return SF_DONE
	}
	t.WakeTime = c.now + uint32(b.ms) + beepGapMs
	return SF_RESCHEDULE
}

// SetRunoutState enables or disables the printer's runout sensor
func (c *Controller) SetRunoutState(enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	c.printer.SetSetting(SettingRunout, 0, v)
	if c.current == RunOut {
		c.DrawMainArea(c.current)
	}
}

func (c *Controller) runoutEnabled() bool {
	return c.printer.Setting(SettingRunout, 0) != 0
}
