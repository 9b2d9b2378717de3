package standalone

import (
	"sort"
	"strconv"

	"dwinhmi/hmi"
	"dwinhmi/standalone/model"
)

// Status implements hmi.Printer
func (p *Printer) Status() hmi.Status {
	state := p.interpreter.GetState()
	return hmi.Status{
		HotendTemp:    state.Temperature["extruder"],
		HotendTarget:  state.TargetTemp["extruder"],
		BedTemp:       state.Temperature["bed"],
		BedTarget:     state.TargetTemp["bed"],
		FanSpeed:      p.fan,
		Feedrate:      p.feedrate,
		Flow:          p.flow,
		ZOffset:       p.config.ProbeOffset.Z,
		Printing:      p.job != nil,
		Paused:        p.paused,
		MediaInserted: p.media,
	}
}

// Files implements hmi.Printer: the media card's files in name order
func (p *Printer) Files() []string {
	if !p.media {
		return nil
	}
	names := make([]string, 0, len(p.config.Files))
	for name := range p.config.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Printer) axis(index int) (string, model.AxisConfig, bool) {
	if index < 0 || index >= len(model.AxisNames) {
		return "", model.AxisConfig{}, false
	}
	name := model.AxisNames[index]
	a, ok := p.config.Axes[name]
	return name, a, ok
}

func (p *Printer) preset(index int) (*model.Preset, bool) {
	if index < 0 || index >= len(p.config.Presets) {
		return nil, false
	}
	return &p.config.Presets[index], true
}

// Setting implements hmi.Printer
func (p *Printer) Setting(s hmi.Setting, index int) float64 {
	state := p.interpreter.GetState()
	switch s {
	case hmi.SettingHotendTarget:
		return state.TargetTemp["extruder"]
	case hmi.SettingBedTarget:
		return state.TargetTemp["bed"]
	case hmi.SettingFanSpeed:
		return p.fan
	case hmi.SettingFeedrate:
		return p.feedrate
	case hmi.SettingFlow:
		return p.flow
	case hmi.SettingZOffset:
		return p.config.ProbeOffset.Z
	case hmi.SettingPosition:
		return p.planner.GetCurrentPosition().Axis(index)
	case hmi.SettingMaxFeedrate, hmi.SettingMaxAccel, hmi.SettingMaxJerk, hmi.SettingStepsPerMM:
		_, a, ok := p.axis(index)
		if !ok {
			return 0
		}
		switch s {
		case hmi.SettingMaxFeedrate:
			return a.MaxVelocity
		case hmi.SettingMaxAccel:
			return a.MaxAccel
		case hmi.SettingMaxJerk:
			return a.MaxJerk
		}
		return a.StepsPerMM
	case hmi.SettingHomeOffset:
		return p.config.HomeOffset.Axis(index)
	case hmi.SettingProbeOffset:
		return p.config.ProbeOffset.Axis(index)
	case hmi.SettingPresetHotend, hmi.SettingPresetBed, hmi.SettingPresetFan:
		pr, ok := p.preset(index)
		if !ok {
			return 0
		}
		switch s {
		case hmi.SettingPresetHotend:
			return pr.Hotend
		case hmi.SettingPresetBed:
			return pr.Bed
		}
		return pr.Fan
	case hmi.SettingLoadLength:
		return p.config.LoadLength
	case hmi.SettingUnloadLength:
		return p.config.UnloadLength
	case hmi.SettingRunout:
		return b2f(p.runout)
	}
	return 0
}

// SetSetting implements hmi.Printer. Values are limited to what the machine
// accepts; a position change queues a move.
func (p *Printer) SetSetting(s hmi.Setting, index int, v float64) {
	if p.killed {
		return
	}
	state := p.interpreter.GetState()
	switch s {
	case hmi.SettingHotendTarget:
		state.TargetTemp["extruder"] = clamp(v, 0, p.config.Heaters["extruder"].MaxTemp)
	case hmi.SettingBedTarget:
		state.TargetTemp["bed"] = clamp(v, 0, p.config.Heaters["bed"].MaxTemp)
	case hmi.SettingFanSpeed:
		p.fan = clamp(v, 0, 255)
	case hmi.SettingFeedrate:
		p.feedrate = clamp(v, 10, 999)
		p.planner.SetSpeedFactor(p.feedrate / 100)
	case hmi.SettingFlow:
		p.flow = clamp(v, 10, 999)
	case hmi.SettingZOffset:
		p.config.ProbeOffset.Z = v
	case hmi.SettingPosition:
		p.setPosition(index, v)
	case hmi.SettingMaxFeedrate, hmi.SettingMaxAccel, hmi.SettingMaxJerk, hmi.SettingStepsPerMM:
		name, a, ok := p.axis(index)
		if !ok || v <= 0 {
			return
		}
		switch s {
		case hmi.SettingMaxFeedrate:
			a.MaxVelocity = v
		case hmi.SettingMaxAccel:
			a.MaxAccel = v
		case hmi.SettingMaxJerk:
			a.MaxJerk = v
		default:
			a.StepsPerMM = v
			if st := p.planner.Stepper(name); st != nil {
				st.SetStepsPerMM(v)
			}
		}
		p.config.Axes[name] = a
	case hmi.SettingHomeOffset:
		if index >= 0 && index < 3 {
			p.config.HomeOffset.SetAxis(index, v)
		}
	case hmi.SettingProbeOffset:
		if index >= 0 && index < 2 {
			p.config.ProbeOffset.SetAxis(index, v)
		}
	case hmi.SettingPresetHotend, hmi.SettingPresetBed, hmi.SettingPresetFan:
		pr, ok := p.preset(index)
		if !ok {
			return
		}
		switch s {
		case hmi.SettingPresetHotend:
			pr.Hotend = clamp(v, 0, p.config.Heaters["extruder"].MaxTemp)
		case hmi.SettingPresetBed:
			pr.Bed = clamp(v, 0, p.config.Heaters["bed"].MaxTemp)
		default:
			pr.Fan = clamp(v, 0, 255)
		}
	case hmi.SettingLoadLength:
		p.config.LoadLength = clamp(v, 0, 1000)
	case hmi.SettingUnloadLength:
		p.config.UnloadLength = clamp(v, 0, 1000)
	case hmi.SettingRunout:
		p.runout = v != 0
	}
}

func (p *Printer) setPosition(index int, v float64) {
	pos := p.planner.GetCurrentPosition()
	if index == int(hmi.AxisE) {
		if p.coldExtrude() {
			p.SendResponse("echo: " + ErrColdExtrude.Error() + "\n")
			return
		}
		p.report(p.extrude(v - pos.E))
		return
	}
	if index < 0 || index > 2 {
		return
	}
	_, a, _ := p.axis(index)
	pos.SetAxis(index, v)
	vel := a.MaxVelocity
	if vel > manualMoveVel {
		vel = manualMoveVel
	}
	p.report(p.moveTo(pos, vel))
}

func (p *Printer) coldExtrude() bool {
	return p.interpreter.GetState().Temperature["extruder"] < p.config.ExtrudeMinTemp
}

// Do implements hmi.Printer. Results of long operations arrive later as
// bridge events.
func (p *Printer) Do(a hmi.Action, arg int) error {
	if p.killed {
		return ErrKilled
	}
	switch a {
	case hmi.ActAutoHome:
		return p.home()
	case hmi.ActDisableSteppers:
		return p.ProcessLine("M84")
	case hmi.ActPreheat:
		pr, ok := p.preset(arg)
		if !ok {
			return ErrBadIndex
		}
		p.SetSetting(hmi.SettingHotendTarget, 0, pr.Hotend)
		p.SetSetting(hmi.SettingBedTarget, 0, pr.Bed)
		p.SetSetting(hmi.SettingFanSpeed, 0, pr.Fan)
	case hmi.ActCooldown:
		p.heatersOff()
	case hmi.ActStoreSettings:
		return p.ProcessLine("M500")
	case hmi.ActRestoreSettings:
		return p.ProcessLine("M501")
	case hmi.ActResetSettings:
		return p.ProcessLine("M502")
	case hmi.ActReboot:
		p.reboot = true
		p.Stop()
		p.post(hmi.Event{Kind: hmi.EvRebooting})
	case hmi.ActPIDTune:
		target := 200.0
		if arg < 0 {
			target = 60
		}
		if pr, ok := p.preset(0); ok {
			target = pr.Hotend
			if arg < 0 {
				target = pr.Bed
			}
		}
		p.autotune(arg, target, 5)
	case hmi.ActPark:
		return p.park()
	case hmi.ActChangeFilament:
		p.changeFilament(0)
	case hmi.ActLoadFilament, hmi.ActUnloadFilament:
		if p.coldExtrude() {
			return ErrColdExtrude
		}
		if a == hmi.ActLoadFilament {
			return p.extrude(p.config.LoadLength)
		}
		return p.extrude(-p.config.UnloadLength)
	case hmi.ActMoveToCorner:
		return p.moveToCorner(arg)
	case hmi.ActMeshStart:
		return p.meshStart()
	case hmi.ActMeshNext:
		return p.meshNext()
	case hmi.ActMeshSave:
		return p.ProcessLine("M500")
	case hmi.ActAutoLevel:
		return p.autoLevel()
	case hmi.ActPause:
		return p.pause(true)
	case hmi.ActResume:
		return p.pause(false)
	case hmi.ActStop:
		return p.abortJob()
	case hmi.ActPurgeMore:
		if p.wait != waitPurge {
			return ErrNotWaiting
		}
		p.purge()
	case hmi.ActPurgeDone:
		if p.wait != waitPurge {
			return ErrNotWaiting
		}
		p.release()
	case hmi.ActUserContinue:
		return p.userContinue()
	case hmi.ActStartPrint:
		return p.startJob(arg)
	default:
		return ErrBadIndex
	}
	return nil
}

// moveToCorner visits a bed corner (0..3 clockwise from front left) or the
// center (4) at nozzle height
func (p *Printer) moveToCorner(i int) error {
	if i < 0 || i > 4 {
		return ErrBadIndex
	}
	if err := p.ensureHomed(); err != nil {
		return err
	}
	ax, ay := p.config.Axes["x"], p.config.Axes["y"]
	lx, hx := ax.MinPosition+cornerInset, ax.MaxPosition-cornerInset
	ly, hy := ay.MinPosition+cornerInset, ay.MaxPosition-cornerInset
	x, y := [5]float64{lx, hx, hx, lx, (lx + hx) / 2}[i], [5]float64{ly, ly, hy, hy, (ly + hy) / 2}[i]
	return p.travel(x, y, 0)
}

func (p *Printer) meshStart() error {
	if err := p.ensureHomed(); err != nil {
		return err
	}
	p.meshIndex = 0
	return p.visitMeshPoint()
}

// meshNext records the nozzle height at the current point and moves on
func (p *Printer) meshNext() error {
	if p.meshIndex < 0 || p.meshIndex >= len(p.mesh) {
		return ErrMeshInactive
	}
	n := p.config.MeshGrid
	col, row := p.meshIndex%n, p.meshIndex/n
	if row%2 == 1 {
		col = n - 1 - col
	}
	p.mesh[row*n+col] = p.planner.GetCurrentPosition().Z
	p.meshIndex++
	if p.meshIndex == len(p.mesh) {
		p.meshIndex = -1
		p.post(hmi.Event{Kind: hmi.EvStatus, Text: "Mesh complete"})
		return nil
	}
	return p.visitMeshPoint()
}

func (p *Printer) visitMeshPoint() error {
	x, y := p.meshPoint(p.meshIndex)
	p.post(hmi.Event{Kind: hmi.EvStatus, Text: "Mesh point " + strconv.Itoa(p.meshIndex+1) + "/" + strconv.Itoa(len(p.mesh))})
	return p.travel(x, y, 0)
}
