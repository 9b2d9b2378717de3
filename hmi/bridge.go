package hmi

import "math"

// EventKind identifies an Event Bridge notification
type EventKind uint8

const (
	EvNone EventKind = iota
	EvKilled
	EvHomingStarted
	EvHomingCompleted
	EvLevelingStarted
	EvMeshPoint
	EvLevelingCompleted
	EvFilamentRunout
	EvFilamentPurge
	EvPIDResult
	EvPrintStarted
	EvPrintStopped
	EvProgress
	EvStatus
	EvHeader
	EvMedia
	EvPauseShow
	EvHeating
	EvTemperatureAlert
	EvWaitForUser
	EvRebooting
)

var eventNames = [...]string{
	"none", "killed", "homing-started", "homing-completed", "leveling-started",
	"mesh-point", "leveling-completed", "filament-runout", "filament-purge",
	"pid-result", "print-started", "print-stopped", "progress", "status",
	"header", "media", "pause-show", "heating", "temperature-alert",
	"wait-for-user", "rebooting",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "event(" + itoa(int(k)) + ")"
}

// Event is one notification from the printer-control loop. The meaning of
// the fields depends on Kind:
//
//	EvFilamentRunout   Arg extruder
//	EvPIDResult        Arg PIDResult
//	EvPrintStarted     Arg 1 when printing from media
//	EvProgress         Arg percent, Arg2 remaining seconds
//	EvMeshPoint        Arg x, Arg2 y, Z height
//	EvMedia, EvPauseShow, EvHeating  Arg 0/1
//	EvTemperatureAlert Arg 1 too high, 0 too low
//	EvKilled           Text message, Text2 component
//	EvStatus, EvHeader, EvWaitForUser  Text
type Event struct {
	Kind  EventKind
	Arg   int32
	Arg2  int32
	Z     float64
	Text  string
	Text2 string
}

const eventQueueSize = 16

type eventQueue struct {
	buf   [eventQueueSize]Event
	head  uint8
	count uint8
}

func (q *eventQueue) push(ev Event) bool {
	if q.count == eventQueueSize {
		return false
	}
	q.buf[(q.head+q.count)%eventQueueSize] = ev
	q.count++
	return true
}

func (q *eventQueue) pop() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	ev := q.buf[q.head]
	q.buf[q.head] = Event{}
	q.head = (q.head + 1) % eventQueueSize
	q.count--
	return ev, true
}

// Post queues ev for the next Poll. A kill is never dropped; other events
// are dropped when the queue is full and Post returns false.
func (c *Controller) Post(ev Event) bool {
	if ev.Kind == EvKilled {
		c.pendingKill = &ev
		return true
	}
	if !c.queue.push(ev) {
		c.Stats.Dropped++
		return false
	}
	return true
}

// route maps an event in a given state to the next state. The first
// matching route wins; events matching no route are stale and ignored.
type route struct {
	event EventKind
	from  ProcessID // anyState matches every state
	when  func(c *Controller, ev *Event) bool
	next  ProcessID // stay, toSaved or a state
	apply func(c *Controller, ev *Event)
}

var routes = []route{
	{event: EvKilled, from: anyState, next: Killed, apply: (*Controller).applyKill},

	{event: EvHomingStarted, from: anyState, next: Homing, apply: (*Controller).applyHomingStarted},
	{event: EvHomingCompleted, from: Homing, next: toSaved, apply: (*Controller).applyHomingCompleted},
	{event: EvHomingCompleted, from: anyState, when: covered(Homing), next: stay, apply: (*Controller).applyCoveredHoming},

	{event: EvLevelingStarted, from: anyState, next: Leveling},
	{event: EvMeshPoint, from: Leveling, next: stay, apply: (*Controller).applyMeshPoint},
	{event: EvLevelingCompleted, from: Leveling, next: toSaved, apply: (*Controller).applyLevelingCompleted},
	{event: EvLevelingCompleted, from: anyState, when: covered(Leveling), next: stay, apply: (*Controller).applyCoveredLeveling},

	{event: EvFilamentRunout, from: WaitResponse, when: sameRunout, next: stay},
	{event: EvFilamentRunout, from: anyState, next: WaitResponse, apply: (*Controller).applyRunout},
	{event: EvFilamentPurge, from: anyState, next: FilamentPurge},

	{event: EvPIDResult, from: anyState, next: PidProcess, apply: (*Controller).applyPIDResult},

	{event: EvPrintStarted, from: anyState, next: PrintProcess, apply: (*Controller).applyPrintStarted},
	{event: EvPrintStopped, from: anyState, when: inPrintFlow, next: PrintDone, apply: (*Controller).applyPrintStopped},
	{event: EvPrintStopped, from: anyState, next: stay, apply: (*Controller).applyPrintStopped},
	{event: EvProgress, from: anyState, next: stay, apply: (*Controller).applyProgress},

	{event: EvStatus, from: anyState, next: stay, apply: (*Controller).applyStatus},
	{event: EvHeader, from: anyState, next: stay, apply: (*Controller).applyHeader},
	{event: EvMedia, from: SelectFile, when: mediaRemoved, next: MainMenu},
	{event: EvMedia, from: anyState, next: stay},
	{event: EvPauseShow, from: anyState, next: stay, apply: (*Controller).applyPauseShow},
	{event: EvHeating, from: anyState, next: stay, apply: (*Controller).applyHeating},
	{event: EvTemperatureAlert, from: anyState, next: WaitResponse, apply: (*Controller).applyTemperatureAlert},
	{event: EvWaitForUser, from: anyState, next: WaitResponse, apply: (*Controller).applyWaitForUser},
	{event: EvRebooting, from: anyState, next: stay, apply: (*Controller).applyRebooting},
}

func sameRunout(c *Controller, ev *Event) bool {
	return c.popup.wait == waitRunout && c.popup.extr == int(ev.Arg)
}

// covered matches while p waits under another popup
func covered(p ProcessID) func(*Controller, *Event) bool {
	return func(c *Controller, _ *Event) bool {
		return c.under == p
	}
}

func mediaRemoved(_ *Controller, ev *Event) bool {
	return ev.Arg == 0
}

// inPrintFlow reports whether the user is looking at the running print,
// directly or behind a popup
func inPrintFlow(c *Controller, _ *Event) bool {
	p := c.current
	if p.IsPopup() {
		p = c.saved
	}
	switch p {
	case PrintProcess, Tune, TuneFlow, PrintSpeed:
		return true
	}
	if n := c.node(p); n != nil && n.parent == viaParent {
		return c.via == Tune
	}
	return false
}

func (c *Controller) dispatch(ev *Event) {
	c.Stats.Events++
	if c.current == Killed && ev.Kind != EvKilled {
		c.Stats.Stale++
		return
	}
	for i := range routes {
		r := &routes[i]
		if r.event != ev.Kind {
			continue
		}
		if r.from != anyState && r.from != c.current {
			continue
		}
		if r.when != nil && !r.when(c, ev) {
			continue
		}
		next := r.next
		if next == toSaved {
			next = c.returnTarget()
		}
		if next != stay && c.node(next) == nil {
			c.Stats.Stale++
			return
		}
		if r.apply != nil {
			r.apply(c, ev)
		}
		if next != stay {
			c.transition(next)
		}
		return
	}
	c.Stats.Stale++
}

func (c *Controller) applyKill(ev *Event) {
	c.popup.message = ev.Text
	c.popup.line2 = ev.Text2
	c.progress.active = false
}

func (c *Controller) applyHomingStarted(*Event) {
	c.Flags.Set(FlagHome, true)
}

func (c *Controller) applyHomingCompleted(*Event) {
	c.Flags.Set(FlagHome, false)
}

// the covering popup now returns past the finished one
func (c *Controller) applyCoveredHoming(ev *Event) {
	c.under = noState
	c.applyHomingCompleted(ev)
}

func (c *Controller) applyCoveredLeveling(ev *Event) {
	c.under = noState
	c.applyLevelingCompleted(ev)
}

func (c *Controller) applyMeshPoint(ev *Event) {
	c.mesh.x, c.mesh.y, c.mesh.z = ev.Arg, ev.Arg2, ev.Z
	c.mesh.points++
	c.drawMeshPoint()
}

func (c *Controller) applyLevelingCompleted(*Event) {
	c.AudioFeedback(true)
}

func (c *Controller) applyRunout(ev *Event) {
	c.popup.wait = waitRunout
	c.popup.extr = int(ev.Arg)
	c.AudioFeedback(false)
}

func (c *Controller) applyPIDResult(ev *Event) {
	r := PIDResult(ev.Arg)
	c.popup.pid = r
	switch r {
	case PIDExtruderStart, PIDBedStart:
		c.popup.pidDone = false
	case PIDDone:
		c.popup.pidDone = true
		c.AudioFeedback(true)
	default:
		c.popup.pidDone = true
		c.AudioFeedback(false)
	}
}

func (c *Controller) applyPrintStarted(*Event) {
	c.progress = progressState{active: true}
	c.Flags.Set(FlagPrintFinish, false)
	c.Flags.Set(FlagPause, false)
	c.Flags.Set(FlagPauseAction, false)
}

func (c *Controller) applyPrintStopped(*Event) {
	c.progress.active = false
	c.Flags.Set(FlagPrintFinish, true)
	c.Flags.Set(FlagPause, false)
	c.Flags.Set(FlagPauseAction, false)
}

func (c *Controller) applyProgress(ev *Event) {
	pct := ev.Arg
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	c.progress.percent = uint8(pct)
	if ev.Arg2 >= 0 {
		c.progress.remaining = uint32(ev.Arg2)
	}
	if c.current == PrintProcess {
		c.drawProgress()
		c.drawPrintTimes()
	}
}

func (c *Controller) applyStatus(ev *Event) {
	c.status = ev.Text
	c.DrawStatusLine(c.Prefs.Colors[ColorStatusTxt], c.Prefs.Colors[ColorStatusBg], ev.Text)
}

func (c *Controller) applyHeader(ev *Event) {
	c.header = ev.Text
	if c.current == PrintProcess {
		c.drawPrintHeader()
	}
}

func (c *Controller) applyPauseShow(ev *Event) {
	c.Flags.Set(FlagPause, ev.Arg != 0)
	c.Flags.Set(FlagPauseAction, false)
	if c.current == PrintProcess {
		c.drawPrintButtons()
	}
}

func (c *Controller) applyHeating(ev *Event) {
	on := ev.Arg != 0
	c.Flags.Set(FlagHeat, on)
	if on {
		c.applyStatus(&Event{Text: txtHeating})
	}
}

func (c *Controller) applyTemperatureAlert(ev *Event) {
	if ev.Arg != 0 {
		c.popup.wait = waitTempTooHigh
	} else {
		c.popup.wait = waitTempTooLow
	}
	c.AudioFeedback(false)
}

func (c *Controller) applyWaitForUser(ev *Event) {
	c.popup.wait = waitUser
	c.popup.message = ev.Text
}

func (c *Controller) applyRebooting(*Event) {
	c.rebooting = true
	c.editing = false
	c.display.Clear(c.Prefs.Colors[ColorBackground])
	c.DrawStatusLine(c.Prefs.Colors[ColorStatusTxt], c.Prefs.Colors[ColorStatusBg], txtRebooting)
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Event Bridge entry points. Each applies immediately; use Post from
// contexts that must not draw.

// StartHoming shows the homing popup over the current screen
func (c *Controller) StartHoming() { c.dispatch(&Event{Kind: EvHomingStarted}) }

// HomingCompleted returns to the screen active before homing started
func (c *Controller) HomingCompleted() { c.dispatch(&Event{Kind: EvHomingCompleted}) }

// LevelingStarted shows the leveling popup
func (c *Controller) LevelingStarted() { c.dispatch(&Event{Kind: EvLevelingStarted}) }

// MeshPointUpdated refreshes the leveling progress readout
func (c *Controller) MeshPointUpdated(x, y int, z float64) {
	c.dispatch(&Event{Kind: EvMeshPoint, Arg: int32(x), Arg2: int32(y), Z: z})
}

// LevelingCompleted closes the leveling popup
func (c *Controller) LevelingCompleted() { c.dispatch(&Event{Kind: EvLevelingCompleted}) }

// FilamentRunout enters the runout confirmation for extruder
func (c *Controller) FilamentRunout(extruder int) {
	c.dispatch(&Event{Kind: EvFilamentRunout, Arg: int32(extruder)})
}

// FilamentPurge asks whether to purge more filament after a change
func (c *Controller) FilamentPurge() { c.dispatch(&Event{Kind: EvFilamentPurge}) }

// PIDTuningResult reports a PID autotune state change
func (c *Controller) PIDTuningResult(r PIDResult) {
	c.dispatch(&Event{Kind: EvPIDResult, Arg: int32(r)})
}

// PrintStarted switches to the print screen and resets its progress
func (c *Controller) PrintStarted(fromMedia bool) {
	c.dispatch(&Event{Kind: EvPrintStarted, Arg: b2i(fromMedia)})
}

// PrintStopped marks the print finished
func (c *Controller) PrintStopped() { c.dispatch(&Event{Kind: EvPrintStopped}) }

// ProgressUpdate refreshes the print progress. percent is clamped to 0..100.
func (c *Controller) ProgressUpdate(percent int, remainingSec int) {
	percent = min(max(percent, 0), 100)
	remainingSec = min(max(remainingSec, 0), math.MaxInt32)
	c.dispatch(&Event{Kind: EvProgress, Arg: int32(percent), Arg2: int32(remainingSec)})
}

// PrinterKilled shows the kill screen. Nothing but a restart leaves it.
func (c *Controller) PrinterKilled(message, component string) {
	c.dispatch(&Event{Kind: EvKilled, Text: message, Text2: component})
}

// StatusChanged shows text on the status line
func (c *Controller) StatusChanged(text string) { c.dispatch(&Event{Kind: EvStatus, Text: text}) }

// PrintHeader sets the name shown on the print screen
func (c *Controller) PrintHeader(text string) { c.dispatch(&Event{Kind: EvHeader, Text: text}) }

// MediaChanged reports card insertion or removal
func (c *Controller) MediaChanged(inserted bool) {
	c.dispatch(&Event{Kind: EvMedia, Arg: b2i(inserted)})
}

// PauseShow switches the print screen between pause and resume
func (c *Controller) PauseShow(paused bool) { c.dispatch(&Event{Kind: EvPauseShow, Arg: b2i(paused)}) }

// Heating reports heater activity
func (c *Controller) Heating(active bool) { c.dispatch(&Event{Kind: EvHeating, Arg: b2i(active)}) }

// TemperatureAlert warns about a hotend temperature problem
func (c *Controller) TemperatureAlert(tooHigh bool) {
	c.dispatch(&Event{Kind: EvTemperatureAlert, Arg: b2i(tooHigh)})
}

// WaitForUser blocks the UI on a confirmation popup
func (c *Controller) WaitForUser(message string) {
	c.dispatch(&Event{Kind: EvWaitForUser, Text: message})
}

// Rebooting shows the reboot screen and stops taking input
func (c *Controller) Rebooting() { c.dispatch(&Event{Kind: EvRebooting}) }
