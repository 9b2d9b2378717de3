package standalone

import (
	"strconv"

	"dwinhmi/hmi"
	"dwinhmi/standalone/gcode"
	"dwinhmi/standalone/model"
)

// execute runs the printer-level codes and hands the rest to the
// interpreter
func (p *Printer) execute(cmd *gcode.Command) error {
	switch cmd.Type {
	case 'G':
		switch cmd.Number {
		case 27: // G27 - Park
			return p.park()
		case 28: // G28 - Home
			return p.doHome(cmd)
		case 29: // G29 - Probe the bed
			return p.autoLevel()
		}
	case 'M':
		if handled, err := p.executeM(cmd); handled {
			return err
		}
	}
	if gcode.Handles(cmd) {
		return p.interpreter.Execute(cmd)
	}
	p.SendResponse("echo:Unknown command: \"" + string(cmd.Type) + strconv.Itoa(cmd.Number) + "\"\n")
	return nil
}

func (p *Printer) executeM(cmd *gcode.Command) (bool, error) {
	switch cmd.Number {
	case 0, 1: // M0/M1 - Wait for user
		text := cmd.Text
		if text == "" {
			text = "Click to continue"
		}
		p.waitText = text
		p.hold(waitUser)
	case 24: // M24 - Resume print
		return true, p.pause(false)
	case 25: // M25 - Pause print
		return true, p.pause(true)
	case 73: // M73 - Set progress
		if p.job != nil {
			p.job.m73 = true
		}
		percent := int32(cmd.GetParameter('P', 0))
		remaining := int32(cmd.GetParameter('R', 0) * 60)
		p.post(hmi.Event{Kind: hmi.EvProgress, Arg: percent, Arg2: remaining})
	case 84: // M84 - Disable steppers
		p.planner.DisableSteppers()
		p.interpreter.Unhome()
	case 92: // M92 - Steps per mm
		p.setAxes(cmd, hmi.SettingStepsPerMM)
	case 106: // M106 - Fan on
		p.fan = clamp(cmd.GetParameter('S', 255), 0, 255)
	case 107: // M107 - Fan off
		p.fan = 0
	case 108: // M108 - Break out of a wait
		if p.wait != waitNone {
			return true, p.userContinue()
		}
	case 112: // M112 - Emergency stop
		p.EmergencyStop()
	case 117: // M117 - Status message
		p.post(hmi.Event{Kind: hmi.EvStatus, Text: cmd.Text})
	case 201: // M201 - Max acceleration
		p.setAxes(cmd, hmi.SettingMaxAccel)
	case 203: // M203 - Max feedrate
		p.setAxes(cmd, hmi.SettingMaxFeedrate)
	case 205: // M205 - Jerk
		p.setAxes(cmd, hmi.SettingMaxJerk)
	case 206: // M206 - Home offset
		p.setOffsets(cmd, hmi.SettingHomeOffset, 3)
	case 220: // M220 - Speed factor
		if cmd.HasParameter('S') {
			p.SetSetting(hmi.SettingFeedrate, 0, cmd.GetParameter('S', 100))
		}
	case 221: // M221 - Flow
		if cmd.HasParameter('S') {
			p.SetSetting(hmi.SettingFlow, 0, cmd.GetParameter('S', 100))
		}
	case 303: // M303 - PID autotune
		p.autotune(int(cmd.GetParameter('E', 0)), cmd.GetParameter('S', 0), int(cmd.GetParameter('C', 5)))
	case 412: // M412 - Runout detection
		if cmd.HasParameter('S') {
			p.runout = cmd.GetParameter('S', 1) != 0
		}
	case 500: // M500 - Store settings
		p.stored = p.snapshot()
		p.SendResponse("echo:Settings Stored\n")
	case 501: // M501 - Restore settings
		p.restore(p.stored)
	case 502: // M502 - Factory defaults
		p.restore(p.defaults)
	case 600: // M600 - Filament change
		p.changeFilament(int(cmd.GetParameter('T', 0)))
	case 851: // M851 - Probe offset
		p.setOffsets(cmd, hmi.SettingProbeOffset, 2)
		if cmd.HasParameter('Z') {
			p.SetSetting(hmi.SettingZOffset, 0, cmd.GetParameter('Z', 0))
		}
	default:
		return false, nil
	}
	return true, nil
}

var axisLetters = [hmi.NumAxes]byte{'X', 'Y', 'Z', 'E'}

func (p *Printer) setAxes(cmd *gcode.Command, s hmi.Setting) {
	for i, letter := range axisLetters {
		if cmd.HasParameter(letter) {
			p.SetSetting(s, i, cmd.GetParameter(letter, 0))
		}
	}
}

func (p *Printer) setOffsets(cmd *gcode.Command, s hmi.Setting, n int) {
	for i, letter := range axisLetters[:n] {
		if cmd.HasParameter(letter) {
			p.SetSetting(s, i, cmd.GetParameter(letter, 0))
		}
	}
}

// doHome homes through the interpreter and reports completion once the
// simulated homing moves would have finished
func (p *Printer) doHome(cmd *gcode.Command) error {
	if err := p.interpreter.Execute(cmd); err != nil {
		return err
	}
	p.busy = true
	p.post(hmi.Event{Kind: hmi.EvHomingStarted})
	p.after(p.homingTime(), func() {
		p.busy = false
		p.post(hmi.Event{Kind: hmi.EvHomingCompleted})
	})
	return nil
}

// homingTime is the time to travel the longest axis at homing speed
func (p *Printer) homingTime() uint32 {
	var longest float64
	for _, name := range model.AxisNames[:3] {
		axis := p.config.Axes[name]
		if axis.HomingVel <= 0 {
			continue
		}
		if t := (axis.MaxPosition - axis.MinPosition) / axis.HomingVel; t > longest {
			longest = t
		}
	}
	return uint32(longest*1000) + 1
}

func (p *Printer) park() error {
	if err := p.ensureHomed(); err != nil {
		return err
	}
	pos := p.planner.GetCurrentPosition()
	park := p.config.ParkPosition
	if park.Z > pos.Z {
		pos.Z = park.Z
		if err := p.moveTo(pos, p.config.Axes["z"].MaxVelocity); err != nil {
			return err
		}
	}
	pos.X, pos.Y = park.X, park.Y
	return p.moveTo(pos, manualMoveVel)
}

// meshPoint returns the bed coordinates of grid point i
func (p *Printer) meshPoint(i int) (x, y float64) {
	n := p.config.MeshGrid
	ax, ay := p.config.Axes["x"], p.config.Axes["y"]
	span := func(lo, hi float64, k int) float64 {
		lo += cornerInset
		hi -= cornerInset
		if n < 2 {
			return (lo + hi) / 2
		}
		return lo + (hi-lo)*float64(k)/float64(n-1)
	}
	col, row := i%n, i/n
	if row%2 == 1 {
		col = n - 1 - col // serpentine
	}
	return span(ax.MinPosition, ax.MaxPosition, col), span(ay.MinPosition, ay.MaxPosition, row)
}

// bedHeight is the simulated bed's deviation at grid column/row
func (p *Printer) bedHeight(col, row int) float64 {
	c := float64(p.config.MeshGrid-1) / 2
	dx, dy := float64(col)-c, float64(row)-c
	return 0.04*dx - 0.03*dy + 0.01*dx*dy
}

// autoLevel probes the grid one point at a time, reporting each result.
// An unhomed machine homes first.
func (p *Printer) autoLevel() error {
	var delay uint32
	if !p.interpreter.AllHomed() {
		if err := p.home(); err != nil {
			return err
		}
		delay = p.homingTime() + 1
	}
	p.busy = true
	p.after(delay, func() {
		p.busy = true
		p.post(hmi.Event{Kind: hmi.EvLevelingStarted})
	})
	n := p.config.MeshGrid
	for i := 0; i < n*n; i++ {
		delay += meshStepMs
		p.after(delay, func() { p.probe(i) })
	}
	p.after(delay+meshStepMs, func() {
		p.busy = false
		p.post(hmi.Event{Kind: hmi.EvLevelingCompleted})
	})
	return nil
}

func (p *Printer) probe(i int) {
	n := p.config.MeshGrid
	x, y := p.meshPoint(i)
	p.report(p.travel(x-p.config.ProbeOffset.X, y-p.config.ProbeOffset.Y, zClearance))
	col, row := i%n, i/n
	if row%2 == 1 {
		col = n - 1 - col
	}
	z := p.bedHeight(col, row)
	p.mesh[row*n+col] = z
	p.post(hmi.Event{Kind: hmi.EvMeshPoint, Arg: int32(col), Arg2: int32(row), Z: z})
}

// autotune runs a simulated M303 on the hotend (0) or bed (-1)
func (p *Printer) autotune(heater int, target float64, cycles int) {
	name := "extruder"
	start := hmi.PIDExtruderStart
	switch {
	case heater == -1:
		name = "bed"
		start = hmi.PIDBedStart
	case heater != 0:
		p.post(hmi.Event{Kind: hmi.EvPIDResult, Arg: int32(hmi.PIDBadExtruderNum)})
		return
	}
	h := p.config.Heaters[name]
	if target > h.MaxTemp-10 {
		p.post(hmi.Event{Kind: hmi.EvPIDResult, Arg: int32(hmi.PIDTempTooHigh)})
		return
	}
	if cycles < 3 {
		cycles = 3
	}
	state := p.interpreter.GetState()
	state.TargetTemp[name] = target
	p.busy = true
	p.post(hmi.Event{Kind: hmi.EvPIDResult, Arg: int32(start)})

	// The tuning cycles start once the heater reaches the target
	window := uint32(cycles) * pidCycleMs
	if h.HeatRate > 0 && target > state.Temperature[name] {
		window += uint32((target - state.Temperature[name]) / h.HeatRate * 1000)
	}
	p.after(window, func() {
		p.busy = false
		state.TargetTemp[name] = 0
		if h.HeatRate <= 0 {
			p.post(hmi.Event{Kind: hmi.EvPIDResult, Arg: int32(hmi.PIDTuningTimeout)})
			return
		}
		h.PID = [3]float64{h.PID[0] * 1.02, h.PID[1] * 0.98, h.PID[2] * 1.01}
		p.config.Heaters[name] = h
		p.post(hmi.Event{Kind: hmi.EvPIDResult, Arg: int32(hmi.PIDDone)})
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
