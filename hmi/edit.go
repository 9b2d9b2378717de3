package hmi

import "math"

// editDesc describes one numeric edit screen: which Value field is live,
// where the value comes from and where a confirmed value goes.
type editDesc struct {
	frac   uint8 // fraction digits shown and stepped
	digits uint8 // integer digits shown
	field  func(v *Value) *float64
	index  func(v *Value, arg int) *float64 // overrides field for indexed values
	limits func(c *Controller, arg int) Limits
	load   func(c *Controller, arg int) float64
	store  func(c *Controller, arg int, v float64)

	// arg picks the index (axis, color channel) from session state.
	// nil means the screen edits a single value.
	arg func(c *Controller) int
}

type editState struct {
	desc *editDesc
	arg  int
	orig float64
}

func perAxis(get func(c *Controller) *[NumAxes]Limits) func(*Controller, int) Limits {
	return func(c *Controller, arg int) Limits {
		if arg < 0 || arg >= int(NumAxes) {
			return Limits{}
		}
		return get(c)[arg]
	}
}

func live(s Setting) (func(*Controller, int) float64, func(*Controller, int, float64)) {
	return func(c *Controller, arg int) float64 { return c.printer.Setting(s, arg) },
		func(c *Controller, arg int, v float64) { c.printer.SetSetting(s, arg, v) }
}

func liveAt(s Setting, index int) (func(*Controller, int) float64, func(*Controller, int, float64)) {
	return func(c *Controller, _ int) float64 { return c.printer.Setting(s, index) },
		func(c *Controller, _ int, v float64) { c.printer.SetSetting(s, index, v) }
}

// temperatureSetting routes to a preheat preset or the live target
// depending on which menu the edit was entered from
func temperatureSetting(target, preset Setting) (func(*Controller, int) float64, func(*Controller, int, float64)) {
	pick := func(c *Controller) (Setting, int) {
		switch c.Value.ShowMode {
		case ShowPLA:
			return preset, 0
		case ShowABS:
			return preset, 1
		}
		return target, 0
	}
	return func(c *Controller, _ int) float64 {
			s, i := pick(c)
			return c.printer.Setting(s, i)
		}, func(c *Controller, _ int, v float64) {
			s, i := pick(c)
			c.printer.SetSetting(s, i, v)
		}
}

func newEditDesc(frac, digits uint8, field func(v *Value) *float64, limits func(*Controller, int) Limits,
	load func(*Controller, int) float64, store func(*Controller, int, float64)) *editDesc {
	return &editDesc{frac: frac, digits: digits, field: field, limits: limits, load: load, store: store}
}

func (s *editDesc) withArg(arg func(c *Controller) int) *editDesc {
	s.arg = arg
	return s
}

// editDescFor returns the descriptor of an edit screen, nil for other states
func editDescFor(p ProcessID) *editDesc {
	switch p {
	case MoveX, MoveY, MoveZ, Extruder:
		axis := int(p - MoveX)
		field := []func(v *Value) *float64{
			func(v *Value) *float64 { return &v.MoveX },
			func(v *Value) *float64 { return &v.MoveY },
			func(v *Value) *float64 { return &v.MoveZ },
			func(v *Value) *float64 { return &v.MoveE },
		}[axis]
		load, store := liveAt(SettingPosition, axis)
		return newEditDesc(1, 3, field, func(c *Controller, _ int) Limits { return c.cfg.Move[axis] }, load, store)

	case MMeshMoveZ:
		load, store := liveAt(SettingPosition, int(AxisZ))
		return newEditDesc(2, 3, func(v *Value) *float64 { return &v.MoveZ },
			func(c *Controller, _ int) Limits { return c.cfg.Move[AxisZ] }, load, store)

	case ETemp:
		load, store := temperatureSetting(SettingHotendTarget, SettingPresetHotend)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.ETemp },
			func(c *Controller, _ int) Limits { return c.cfg.HotendTemp }, load, store)

	case BedTemp:
		load, store := temperatureSetting(SettingBedTarget, SettingPresetBed)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.BedTemp },
			func(c *Controller, _ int) Limits { return c.cfg.BedTemp }, load, store)

	case FanSpeed:
		load, store := temperatureSetting(SettingFanSpeed, SettingPresetFan)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.FanSpeed },
			func(c *Controller, _ int) Limits { return c.cfg.FanSpeed }, load, store)

	case PrintSpeed:
		load, store := liveAt(SettingFeedrate, 0)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.PrintSpeed },
			func(c *Controller, _ int) Limits { return c.cfg.PrintSpeed }, load, store)

	case PrintFlow, TuneFlow:
		load, store := liveAt(SettingFlow, 0)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.PrintFlow },
			func(c *Controller, _ int) Limits { return c.cfg.PrintFlow }, load, store)

	case Zoffset:
		load, store := liveAt(SettingZOffset, 0)
		return newEditDesc(2, 2, func(v *Value) *float64 { return &v.ZOffset },
			func(c *Controller, _ int) Limits { return c.cfg.ZOffset }, load, store)

	case MaxSpeedValue:
		load, store := live(SettingMaxFeedrate)
		return newEditDesc(0, 4, func(v *Value) *float64 { return &v.MaxFeedspeed },
			perAxis(func(c *Controller) *[NumAxes]Limits { return &c.cfg.MaxFeedrate }), load, store).
			withArg(func(c *Controller) int { return int(c.Flags.FeedspeedAxis) })

	case MaxAccelerationValue:
		load, store := live(SettingMaxAccel)
		return newEditDesc(0, 5, func(v *Value) *float64 { return &v.MaxAcceleration },
			perAxis(func(c *Controller) *[NumAxes]Limits { return &c.cfg.MaxAccel }), load, store).
			withArg(func(c *Controller) int { return int(c.Flags.AccAxis) })

	case MaxJerkValue:
		load, store := live(SettingMaxJerk)
		return newEditDesc(1, 3, func(v *Value) *float64 { return &v.MaxJerk },
			perAxis(func(c *Controller) *[NumAxes]Limits { return &c.cfg.MaxJerk }), load, store).
			withArg(func(c *Controller) int { return int(c.Flags.JerkAxis) })

	case StepValue:
		load, store := live(SettingStepsPerMM)
		return newEditDesc(1, 3, func(v *Value) *float64 { return &v.MaxStep },
			perAxis(func(c *Controller) *[NumAxes]Limits { return &c.cfg.StepsPerMM }), load, store).
			withArg(func(c *Controller) int { return int(c.Flags.StepAxis) })

	case HomeOffX, HomeOffY, HomeOffZ:
		axis := int(p - HomeOffX)
		field := []func(v *Value) *float64{
			func(v *Value) *float64 { return &v.HomeOffX },
			func(v *Value) *float64 { return &v.HomeOffY },
			func(v *Value) *float64 { return &v.HomeOffZ },
		}[axis]
		load, store := liveAt(SettingHomeOffset, axis)
		return newEditDesc(1, 3, field, func(c *Controller, _ int) Limits { return c.cfg.HomeOffset }, load, store)

	case ProbeOffX, ProbeOffY:
		axis := int(p - ProbeOffX)
		field := []func(v *Value) *float64{
			func(v *Value) *float64 { return &v.ProbeOffX },
			func(v *Value) *float64 { return &v.ProbeOffY },
		}[axis]
		load, store := liveAt(SettingProbeOffset, axis)
		return newEditDesc(1, 3, field, func(c *Controller, _ int) Limits { return c.cfg.ProbeOffset }, load, store)

	case ParkPosX, ParkPosY, ParkPosZ:
		axis := int(p - ParkPosX)
		field := []func(v *Value) *float64{
			func(v *Value) *float64 { return &v.ParkPosX },
			func(v *Value) *float64 { return &v.ParkPosY },
			func(v *Value) *float64 { return &v.ParkPosZ },
		}[axis]
		return newEditDesc(0, 3, field,
			func(c *Controller, _ int) Limits { return c.cfg.ParkPos[axis] },
			func(c *Controller, _ int) float64 { return float64(c.Prefs.ParkPoint[axis]) },
			func(c *Controller, _ int, v float64) { c.Prefs.ParkPoint[axis] = float32(v) })

	case Brightness:
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.Brightness },
			func(c *Controller, _ int) Limits { return c.cfg.Brightness },
			func(c *Controller, _ int) float64 { return float64(c.Prefs.Brightness) },
			func(c *Controller, _ int, v float64) {
				c.Prefs.Brightness = uint8(v)
				c.display.SetBrightness(c.Prefs.Brightness)
			})

	case LoadLength:
		load, store := liveAt(SettingLoadLength, 0)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.LoadLength },
			func(c *Controller, _ int) Limits { return c.cfg.FilamentLength }, load, store)

	case UnloadLength:
		load, store := liveAt(SettingUnloadLength, 0)
		return newEditDesc(0, 3, func(v *Value) *float64 { return &v.UnloadLength },
			func(c *Controller, _ int) Limits { return c.cfg.FilamentLength }, load, store)

	case GetColorValue:
		desc := newEditDesc(0, 2, nil,
			func(_ *Controller, arg int) Limits {
				if arg == 1 {
					return Limits{0, 63}
				}
				return Limits{0, 31}
			},
			func(c *Controller, arg int) float64 { return c.Value.Color[arg] },
			func(c *Controller, arg int, v float64) { c.Value.Color[arg] = v }).
			withArg(func(c *Controller) int { return c.colorChannel })
		desc.index = func(v *Value, arg int) *float64 { return &v.Color[arg] }
		return desc
	}
	return nil
}

func (s *editDesc) editField(v *Value, arg int) *float64 {
	if s.index != nil {
		return s.index(v, arg)
	}
	return s.field(v)
}

func (s *editDesc) step() float64 {
	return math.Pow(10, -float64(s.frac))
}

func roundTo(v float64, frac uint8) float64 {
	scale := math.Pow(10, float64(frac))
	return math.Round(v*scale) / scale
}

func (c *Controller) beginEdit(desc *editDesc) {
	arg := 0
	if desc.arg != nil {
		arg = desc.arg(c)
	}
	v := desc.load(c, arg)
	*desc.editField(&c.Value, arg) = v
	c.edit = editState{desc: desc, arg: arg, orig: v}
	c.editing = true
}

// stepEdit moves the live value by dir detents, clamped to the limits
func (c *Controller) stepEdit(dir int) {
	desc := c.edit.desc
	f := desc.editField(&c.Value, c.edit.arg)
	v := roundTo(*f+float64(dir)*desc.step(), desc.frac)
	*f = desc.limits(c, c.edit.arg).Clamp(v)
	c.drawEditValue()
}

// SetEditValue replaces the live value of the active edit screen, as if
// typed in. Range is enforced on confirm. Returns false outside an edit.
func (c *Controller) SetEditValue(v float64) bool {
	if !c.editing {
		return false
	}
	*c.edit.desc.editField(&c.Value, c.edit.arg) = roundTo(v, c.edit.desc.frac)
	c.drawEditValue()
	return true
}

// EditValue returns the live value of the active edit screen
func (c *Controller) EditValue() (float64, bool) {
	if !c.editing {
		return 0, false
	}
	return *c.edit.desc.editField(&c.Value, c.edit.arg), true
}

// commitEdit clamps the live value, writes it back and leaves the screen
func (c *Controller) commitEdit() {
	desc := c.edit.desc
	f := desc.editField(&c.Value, c.edit.arg)
	if math.IsNaN(*f) {
		*f = c.edit.orig
	}
	v := desc.limits(c, c.edit.arg).Clamp(*f)
	*f = v
	desc.store(c, c.edit.arg, v)
	c.editing = false
	c.transition(c.parentOf(c.current))
}

// cancelEdit drops the live value and restores the snapshot
func (c *Controller) cancelEdit() {
	if !c.editing {
		return
	}
	*c.edit.desc.editField(&c.Value, c.edit.arg) = c.edit.orig
	c.editing = false
}
