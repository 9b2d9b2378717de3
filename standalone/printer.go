package standalone

import (
	"errors"
	"sort"
	"strings"

	"dwinhmi/hmi"
	"dwinhmi/standalone/gcode"
	"dwinhmi/standalone/kinematics"
	"dwinhmi/standalone/model"
	"dwinhmi/standalone/planner"
)

var (
	ErrKilled       = errors.New("printer killed")
	ErrNotPrinting  = errors.New("no print running")
	ErrPrinting     = errors.New("print already running")
	ErrColdExtrude  = errors.New("cold extrusion prevented")
	ErrNoMedia      = errors.New("no media inserted")
	ErrBadIndex     = errors.New("index out of range")
	ErrNotWaiting   = errors.New("nothing to continue")
	ErrMeshInactive = errors.New("manual mesh not started")
	ErrUnsupported  = errors.New("unsupported kinematics")
)

// Bridge receives the notifications the printer raises for the HMI. The
// hmi.Controller satisfies it; Post only queues, so it is safe to call from
// inside a controller callback.
type Bridge interface {
	Post(ev hmi.Event) bool
}

type waitKind uint8

const (
	waitNone waitKind = iota
	waitUser
	waitRunout
	waitPurge
)

const (
	ambientTemp   = 25.0
	linesPerPoll  = 8
	maxQueuedMove = 8
	meshStepMs    = 400
	pidCycleMs    = 2000
	manualMoveVel = 50.0
	zClearance    = 5.0
	cornerInset   = 30.0
)

type job struct {
	name    string
	lines   []string
	next    int
	started uint32
	percent int32
	m73     bool
}

type task struct {
	at uint32
	fn func()
}

// Printer is a simulated printer-control loop: a G-code parser and
// interpreter on top of a time-based planner, with heaters, a media card and
// the filament, leveling and PID flows the HMI reacts to.
type Printer struct {
	config      *model.MachineConfig
	defaults    snapshot
	stored      snapshot
	parser      *gcode.Parser
	interpreter *gcode.Interpreter
	planner     *planner.Planner
	kinematics  kinematics.Kinematics
	bridge      Bridge

	// Serial interface
	inputBuffer  []byte
	outputBuffer []byte

	running bool
	killed  bool
	reboot  bool

	now      uint32
	tasks    []task
	busy     bool
	heating  bool
	fan      float64
	feedrate float64
	flow     float64
	runout   bool
	media    bool

	job      *job
	paused   bool
	wait     waitKind
	waitText string // M0 prompt
	waitExtr int    // extruder of a pending filament change

	mesh      []float64
	meshIndex int
}

// NewPrinter creates a simulated printer. The configuration is copied.
func NewPrinter(cfg *model.MachineConfig, bridge Bridge) (*Printer, error) {
	config := copyConfig(cfg)

	var kin kinematics.Kinematics
	var err error
	switch config.Kinematics {
	case "cartesian", "":
		kin, err = kinematics.NewCartesian(config)
	default:
		return nil, errors.New(ErrUnsupported.Error() + ": " + config.Kinematics)
	}
	if err != nil {
		return nil, err
	}

	p := &Printer{
		config:       config,
		parser:       gcode.NewParser(),
		kinematics:   kin,
		bridge:       bridge,
		inputBuffer:  make([]byte, 0, 256),
		outputBuffer: make([]byte, 0, 256),
		feedrate:     100,
		flow:         100,
		runout:       config.RunoutSensor,
		media:        len(config.Files) > 0,
		mesh:         make([]float64, config.MeshGrid*config.MeshGrid),
		meshIndex:    -1,
	}
	p.planner = planner.NewPlanner(config, kin)
	p.interpreter = gcode.NewInterpreter(config, p.planner, p.SendResponse)
	p.defaults = p.snapshot()
	p.stored = p.snapshot()
	return p, nil
}

// SetBridge connects the HMI after construction
func (p *Printer) SetBridge(b Bridge) { p.bridge = b }

func (p *Printer) post(ev hmi.Event) {
	if p.bridge == nil {
		return
	}
	if !p.bridge.Post(ev) {
		hmi.DebugPrintln("[SIM] event dropped: " + ev.Kind.String())
	}
}

// Start begins operation and announces media and readiness
func (p *Printer) Start() {
	p.running = true
	p.SendResponse("start\n")
	p.post(hmi.Event{Kind: hmi.EvMedia, Arg: b2i(p.media)})
	p.post(hmi.Event{Kind: hmi.EvStatus, Text: "Ready."})
}

// Stop halts all operation
func (p *Printer) Stop() {
	p.running = false
	p.planner.ClearQueue()
}

// IsRunning returns whether the printer is running
func (p *Printer) IsRunning() bool {
	return p.running
}

// Killed reports whether the printer halted
func (p *Printer) Killed() bool { return p.killed }

// RebootRequested reports whether the HMI asked for a restart
func (p *Printer) RebootRequested() bool { return p.reboot }

// GetState returns the current machine state
func (p *Printer) GetState() *model.MachineState {
	return p.interpreter.GetState()
}

// Planner exposes the motion planner
func (p *Printer) Planner() *planner.Planner { return p.planner }

// ProcessLine parses and executes one line of G-code
func (p *Printer) ProcessLine(line string) error {
	if p.killed {
		return ErrKilled
	}
	cmd, err := p.parser.ParseLine(line)
	if err != nil {
		return err
	}
	if cmd == nil || cmd.Type == 0 {
		return nil
	}
	return p.execute(cmd)
}

// ProcessByte processes a single byte of input (for serial streaming)
func (p *Printer) ProcessByte(b byte) error {
	if b != '\n' && b != '\r' {
		p.inputBuffer = append(p.inputBuffer, b)
		return nil
	}
	line := strings.TrimSpace(string(p.inputBuffer))
	p.inputBuffer = p.inputBuffer[:0]
	if line == "" {
		return nil
	}
	if err := p.ProcessLine(line); err != nil {
		p.SendResponse("Error:" + err.Error() + "\n")
		return err
	}
	p.SendResponse("ok\n")
	return nil
}

// SendResponse queues a response to be sent to the host
func (p *Printer) SendResponse(response string) {
	p.outputBuffer = append(p.outputBuffer, response...)
}

// report sends a failure from a step nobody returns an error to
func (p *Printer) report(err error) {
	if err != nil {
		p.SendResponse("Error:" + err.Error() + "\n")
	}
}

// GetOutput returns any pending output and clears the buffer
func (p *Printer) GetOutput() []byte {
	if len(p.outputBuffer) == 0 {
		return nil
	}
	output := make([]byte, len(p.outputBuffer))
	copy(output, p.outputBuffer)
	p.outputBuffer = p.outputBuffer[:0]
	return output
}

// Update advances the simulation to nowMs: motion, heaters, timed flows and
// the running print
func (p *Printer) Update(nowMs uint32) {
	dt := float64(nowMs-p.now) / 1000
	if p.now == 0 || dt > 5 {
		dt = 0
	}
	p.now = nowMs
	if p.killed {
		return
	}
	p.planner.Update(nowMs)
	p.updateHeaters(dt)
	p.runTasks()
	p.runJob()
}

func (p *Printer) after(ms uint32, fn func()) {
	t := task{at: p.now + ms, fn: fn}
	i := sort.Search(len(p.tasks), func(i int) bool { return before(t.at, p.tasks[i].at) })
	p.tasks = append(p.tasks, task{})
	copy(p.tasks[i+1:], p.tasks[i:])
	p.tasks[i] = t
}

func (p *Printer) runTasks() {
	for len(p.tasks) > 0 && !before(p.now, p.tasks[0].at) {
		t := p.tasks[0]
		p.tasks = p.tasks[1:]
		t.fn()
		if p.killed {
			return
		}
	}
}

func (p *Printer) updateHeaters(dt float64) {
	state := p.interpreter.GetState()
	for name, h := range p.config.Heaters {
		temp, target := state.Temperature[name], state.TargetTemp[name]
		goal := target
		rate := h.HeatRate
		if target < ambientTemp {
			goal = ambientTemp
		}
		if goal < temp {
			rate /= 2
		}
		temp = approach(temp, goal, rate*dt)
		state.Temperature[name] = temp
	}

	if w := state.WaitHeater; w != "" {
		if !p.heating {
			p.heating = true
			p.post(hmi.Event{Kind: hmi.EvHeating, Arg: 1})
		}
		if state.Temperature[w] >= state.TargetTemp[w]-1 {
			state.WaitHeater = ""
			p.heating = false
			p.post(hmi.Event{Kind: hmi.EvHeating, Arg: 0})
		}
	}
}

func approach(v, goal, step float64) float64 {
	if v < goal {
		v += step
		if v > goal {
			v = goal
		}
	} else if v > goal {
		v -= step
		if v < goal {
			v = goal
		}
	}
	return v
}

func (p *Printer) runJob() {
	j := p.job
	for n := 0; n < linesPerPoll && p.job == j && p.canAdvance(); n++ {
		if j.next >= len(j.lines) {
			p.finishJob()
			return
		}
		line := j.lines[j.next]
		j.next++
		if err := p.ProcessLine(line); err != nil {
			hmi.DebugPrintln("[SIM] " + j.name + ": " + err.Error())
		}
		if p.job == j && !j.m73 {
			p.reportProgress(int32(j.next * 100 / len(j.lines)))
		}
	}
}

func (p *Printer) canAdvance() bool {
	return p.job != nil && !p.paused && p.wait == waitNone && !p.busy &&
		p.interpreter.GetState().WaitHeater == "" && p.planner.QueueLen() < maxQueuedMove
}

func (p *Printer) reportProgress(percent int32) {
	j := p.job
	if j == nil || percent == j.percent {
		return
	}
	j.percent = percent
	var remaining int32
	if percent > 0 {
		elapsed := int32((p.now - j.started) / 1000)
		remaining = elapsed * (100 - percent) / percent
	}
	p.post(hmi.Event{Kind: hmi.EvProgress, Arg: percent, Arg2: remaining})
}

func (p *Printer) finishJob() {
	if p.job == nil {
		return
	}
	name := p.job.name
	p.reportProgress(100)
	p.job = nil
	p.paused = false
	p.wait = waitNone
	p.post(hmi.Event{Kind: hmi.EvPrintStopped})
	p.post(hmi.Event{Kind: hmi.EvStatus, Text: name + " done."})
}

func (p *Printer) startJob(index int) error {
	if p.job != nil {
		return ErrPrinting
	}
	files := p.Files()
	if len(files) == 0 {
		return ErrNoMedia
	}
	if index < 0 || index >= len(files) {
		return ErrBadIndex
	}
	name := files[index]
	p.job = &job{
		name:    name,
		lines:   strings.Split(p.config.Files[name], "\n"),
		started: p.now,
		percent: -1,
	}
	p.post(hmi.Event{Kind: hmi.EvHeader, Text: name})
	p.post(hmi.Event{Kind: hmi.EvPrintStarted, Arg: 1})
	p.reportProgress(0)
	return nil
}

func (p *Printer) abortJob() error {
	if p.job == nil {
		return ErrNotPrinting
	}
	p.job = nil
	p.paused = false
	p.wait = waitNone
	p.planner.ClearQueue()
	p.heatersOff()
	p.post(hmi.Event{Kind: hmi.EvPrintStopped})
	return nil
}

func (p *Printer) pause(paused bool) error {
	if p.job == nil {
		return ErrNotPrinting
	}
	if !paused && p.wait != waitNone {
		// the print resumes once the prompt is answered
		p.prompt()
		return nil
	}
	if p.paused == paused {
		return nil
	}
	p.paused = paused
	p.post(hmi.Event{Kind: hmi.EvPauseShow, Arg: b2i(paused)})
	return nil
}

func (p *Printer) heatersOff() {
	state := p.interpreter.GetState()
	for name := range state.TargetTemp {
		state.TargetTemp[name] = 0
	}
	state.WaitHeater = ""
	if p.heating {
		p.heating = false
		p.post(hmi.Event{Kind: hmi.EvHeating, Arg: 0})
	}
	p.fan = 0
}

// kill halts the printer for good
func (p *Printer) kill(message, component string) {
	if p.killed {
		return
	}
	p.planner.ClearQueue()
	p.heatersOff()
	p.job = nil
	p.tasks = nil
	p.busy = false
	p.killed = true
	p.SendResponse("Error:" + message + "\n")
	p.post(hmi.Event{Kind: hmi.EvKilled, Text: message, Text2: component})
}

// EmergencyStop halts the printer as M112 does
func (p *Printer) EmergencyStop() {
	p.kill("Emergency stop", "M112")
}

// TriggerRunout simulates the filament sensor firing on an extruder
func (p *Printer) TriggerRunout(extruder int) {
	if p.killed || !p.runout || p.job == nil || p.wait != waitNone {
		return
	}
	p.changeFilament(extruder)
}

// TemperatureFault simulates a thermal protection trip. A too-high reading
// halts the printer.
func (p *Printer) TemperatureFault(tooHigh bool) {
	if p.killed {
		return
	}
	p.post(hmi.Event{Kind: hmi.EvTemperatureAlert, Arg: b2i(tooHigh)})
	p.heatersOff()
	if tooHigh {
		p.kill("Thermal runaway", "E1")
	}
}

// SetMedia inserts or removes the simulated media card
func (p *Printer) SetMedia(inserted bool) {
	if p.media == inserted {
		return
	}
	p.media = inserted
	if !inserted && p.job != nil {
		p.report(p.abortJob())
	}
	p.post(hmi.Event{Kind: hmi.EvMedia, Arg: b2i(inserted)})
}

func (p *Printer) changeFilament(extruder int) {
	p.waitExtr = extruder
	p.hold(waitRunout)
}

// hold parks the print until the user answers a prompt
func (p *Printer) hold(kind waitKind) {
	p.wait = kind
	if p.job != nil && !p.paused {
		p.paused = true
		p.post(hmi.Event{Kind: hmi.EvPauseShow, Arg: 1})
	}
	p.prompt()
}

// prompt shows the question the printer is waiting on
func (p *Printer) prompt() {
	switch p.wait {
	case waitUser:
		p.post(hmi.Event{Kind: hmi.EvWaitForUser, Text: p.waitText})
	case waitRunout:
		p.post(hmi.Event{Kind: hmi.EvFilamentRunout, Arg: int32(p.waitExtr)})
	case waitPurge:
		p.post(hmi.Event{Kind: hmi.EvFilamentPurge})
	}
}

func (p *Printer) purge() {
	p.wait = waitPurge
	p.report(p.extrude(p.config.PurgeLength))
	p.post(hmi.Event{Kind: hmi.EvFilamentPurge})
}

func (p *Printer) extrude(length float64) error {
	pos := p.planner.GetCurrentPosition()
	target := pos
	target.E += length
	return p.planner.QueueMove(&model.Move{
		Start:    pos,
		End:      target,
		Velocity: p.config.Axes["e"].MaxVelocity,
		Accel:    p.config.DefaultAccel,
	})
}

// userContinue releases an M0 wait or advances a filament change
func (p *Printer) userContinue() error {
	switch p.wait {
	case waitUser:
		p.release()
	case waitRunout:
		p.purge()
	case waitPurge:
		p.release()
	default:
		return ErrNotWaiting
	}
	return nil
}

// release ends a wait and resumes a print it paused
func (p *Printer) release() {
	p.wait = waitNone
	if p.job != nil && p.paused {
		p.paused = false
		p.post(hmi.Event{Kind: hmi.EvPauseShow, Arg: 0})
	}
}

func (p *Printer) home() error {
	return p.ProcessLine("G28")
}

func (p *Printer) ensureHomed() error {
	if p.interpreter.AllHomed() {
		return nil
	}
	return p.home()
}

// moveTo queues a travel move to an absolute XYZ target inside the limits
func (p *Printer) moveTo(target model.Position, velocity float64) error {
	start := p.planner.GetCurrentPosition()
	target.E = start.E
	target = p.kinematics.Clamp(target)
	dx, dy, dz := target.X-start.X, target.Y-start.Y, target.Z-start.Z
	dist := sqrt(dx*dx + dy*dy + dz*dz)
	if dist < 0.001 {
		return nil
	}
	return p.planner.QueueMove(&model.Move{
		Start:    start,
		End:      target,
		Velocity: velocity,
		Accel:    p.config.DefaultAccel,
		Distance: dist,
	})
}

// travel lifts Z, moves over XY and lowers to z
func (p *Printer) travel(x, y, z float64) error {
	pos := p.planner.GetCurrentPosition()
	if pos.Z < zClearance {
		pos.Z = zClearance
		if err := p.moveTo(pos, p.config.Axes["z"].MaxVelocity); err != nil {
			return err
		}
	}
	pos.X, pos.Y = x, y
	if err := p.moveTo(pos, manualMoveVel); err != nil {
		return err
	}
	pos.Z = z
	return p.moveTo(pos, p.config.Axes["z"].MaxVelocity)
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func before(a, b uint32) bool {
	return int32(a-b) < 0
}

func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	z := x
	for i := 0; i < 20; i++ {
		z = z - (z*z-x)/(2*z)
	}
	return z
}
