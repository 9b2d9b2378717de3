package hmi

type nodeKind uint8

const (
	kindMenu nodeKind = iota
	kindEdit
	kindPopup
)

// command is what a menu item does when clicked
type command uint8

const (
	cmdEnter command = iota // go to target
	cmdBack
	cmdAction // printer.Do(act, arg)
	cmdPrintMenu
	cmdExtruderMove
	cmdStoreSettings
	cmdRestoreSettings
	cmdResetSettings
	cmdDefaultColors
	cmdAcceptColor
	cmdToggleRunout
	cmdPauseResume
	cmdStopPrint
	cmdReboot
	cmdPID
)

type item struct {
	label    string
	icon     uint8
	target   ProcessID
	cmd      command
	act      Action
	arg      int
	requires Capabilities
}

type node struct {
	id     ProcessID
	kind   nodeKind
	title  string
	parent ProcessID // a state, viaParent, toSaved or noParent
	items  []item
	edit   *editDesc
	enter  func(c *Controller, from ProcessID)
}

func back() item {
	return item{label: txtBack, icon: IconBack, cmd: cmdBack}
}

func to(label string, icon uint8, target ProcessID) item {
	return item{label: label, icon: icon, target: target}
}

func toArg(label string, icon uint8, target ProcessID, arg int) item {
	return item{label: label, icon: icon, target: target, arg: arg}
}

func act(label string, icon uint8, a Action, arg int, requires Capabilities) item {
	return item{label: label, icon: icon, target: stay, cmd: cmdAction, act: a, arg: arg, requires: requires}
}

func run(label string, icon uint8, cmd command, requires Capabilities) item {
	return item{label: label, icon: icon, target: stay, cmd: cmd, requires: requires}
}

func menu(id ProcessID, title string, parent ProcessID, items ...item) *node {
	return &node{id: id, kind: kindMenu, title: title, parent: parent, items: items}
}

func edit(id ProcessID, title string, parent ProcessID) *node {
	return &node{id: id, kind: kindEdit, title: title, parent: parent, edit: editDescFor(id)}
}

func popup(id ProcessID, enter func(c *Controller, from ProcessID)) *node {
	return &node{id: id, kind: kindPopup, parent: toSaved, enter: enter}
}

func axisItems(target ProcessID) []item {
	return []item{
		back(),
		toArg("X", IconAxis, target, int(AxisX)),
		toArg("Y", IconAxis, target, int(AxisY)),
		toArg("Z", IconAxis, target, int(AxisZ)),
		{label: "E", icon: IconAxis, target: target, arg: int(AxisE), requires: CapHotend},
	}
}

func colorItems() []item {
	items := []item{back(), run(txtDefaultColors, IconResetEEPROM, cmdDefaultColors, 0)}
	for i := 0; i < NumColors; i++ {
		items = append(items, toArg(colorNames[i], IconPalette, GetColor, i))
	}
	return items
}

func showMode(mode int8) func(c *Controller, from ProcessID) {
	return func(c *Controller, _ ProcessID) { c.Value.ShowMode = mode }
}

// allNodes lists every state before capability gating
func allNodes() []*node {
	nodes := []*node{
		menu(MainMenu, txtMainMenu, noParent,
			item{label: txtPrint, icon: IconPrint, target: SelectFile, cmd: cmdPrintMenu},
			to(txtPrepare, IconPrepare, Prepare),
			to(txtControl, IconControl, Control),
			to(txtInfo, IconInfo, Info),
		),
		menu(SelectFile, txtSelectFile, MainMenu, back()),
		menu(Prepare, txtPrepare, MainMenu,
			back(),
			to(txtMove, IconMove, AxisMove),
			act(txtAutoHome, IconHoming, ActAutoHome, 0, 0),
			to(txtManualLev, IconLeveling, ManualLev),
			act(txtAutoLevel, IconLeveling, ActAutoLevel, 0, CapLeveling),
			to(txtManualMesh, IconMeshNext, ManualMesh),
			to(txtZOffset, IconZOffset, Zoffset),
			act(txtPreheatPLA, IconPreheat, ActPreheat, 0, CapHotend),
			act(txtPreheatABS, IconPreheat, ActPreheat, 1, CapHotend),
			act(txtCooldown, IconCool, ActCooldown, 0, 0),
			to(txtFilament, IconFilament, FilamentMan),
			act(txtDisableSteppers, IconMotion, ActDisableSteppers, 0, 0),
		),
		menu(AxisMove, txtMove, Prepare,
			back(),
			to(txtMoveX, IconMove, MoveX),
			to(txtMoveY, IconMove, MoveY),
			to(txtMoveZ, IconMove, MoveZ),
			item{label: txtExtruder, icon: IconHotend, target: Extruder, cmd: cmdExtruderMove, requires: CapHotend},
		),
		menu(ManualLev, txtManualLev, Prepare,
			back(),
			act(txtCornerFL, IconAxis, ActMoveToCorner, 0, 0),
			act(txtCornerFR, IconAxis, ActMoveToCorner, 1, 0),
			act(txtCornerBR, IconAxis, ActMoveToCorner, 2, 0),
			act(txtCornerBL, IconAxis, ActMoveToCorner, 3, 0),
			act(txtCenter, IconAxis, ActMoveToCorner, 4, 0),
		),
		menu(ManualMesh, txtManualMesh, Prepare,
			back(),
			act(txtMeshStart, IconHoming, ActMeshStart, 0, 0),
			act(txtMeshNext, IconMeshNext, ActMeshNext, 0, 0),
			to(txtMeshMoveZ, IconMove, MMeshMoveZ),
			act(txtMeshSave, IconWriteEEPROM, ActMeshSave, 0, 0),
		),
		menu(FilamentMan, txtFilament, Prepare,
			back(),
			act(txtParkPos, IconPark, ActPark, 0, CapNozzlePark),
			act(txtChangeFilament, IconFilament, ActChangeFilament, 0, 0),
			act(txtLoadFilament, IconFilament, ActLoadFilament, 0, CapAdvancedPause),
			act(txtUnloadFilament, IconFilament, ActUnloadFilament, 0, CapAdvancedPause),
		),
		menu(Control, txtControl, MainMenu,
			back(),
			to(txtTemperature, IconTemperature, TemperatureID),
			to(txtMotion, IconMotion, Motion),
			to(txtAdvanced, IconAdvSet, AdvSet),
			run(txtStore, IconWriteEEPROM, cmdStoreSettings, 0),
			run(txtRestore, IconReadEEPROM, cmdRestoreSettings, 0),
			run(txtReset, IconResetEEPROM, cmdResetSettings, 0),
			to(txtReboot, IconReboot, Reboot),
		),
		menu(TemperatureID, txtTemperature, Control,
			back(),
			to(txtHotend, IconHotend, ETemp),
			to(txtBed, IconBed, BedTemp),
			to(txtFan, IconFan, FanSpeed),
			to(txtPLASettings, IconPreheat, PLAPreheat),
			to(txtABSSettings, IconPreheat, ABSPreheat),
		),
		menu(PLAPreheat, txtPLASettings, TemperatureID,
			back(),
			to(txtHotend, IconHotend, ETemp),
			to(txtBed, IconBed, BedTemp),
			to(txtFan, IconFan, FanSpeed),
		),
		menu(ABSPreheat, txtABSSettings, TemperatureID,
			back(),
			to(txtHotend, IconHotend, ETemp),
			to(txtBed, IconBed, BedTemp),
			to(txtFan, IconFan, FanSpeed),
		),
		menu(Motion, txtMotion, Control,
			back(),
			to(txtMaxSpeed, IconMaxSpeed, MaxSpeed),
			to(txtMaxAccel, IconMaxAccel, MaxAcceleration),
			to(txtMaxJerk, IconMaxJerk, MaxJerk),
			to(txtSteps, IconStep, Step),
			to(txtFlow, IconFlow, PrintFlow),
		),
		menu(MaxSpeed, txtMaxSpeed, Motion, axisItems(MaxSpeedValue)...),
		menu(MaxAcceleration, txtMaxAccel, Motion, axisItems(MaxAccelerationValue)...),
		menu(MaxJerk, txtMaxJerk, Motion, axisItems(MaxJerkValue)...),
		menu(Step, txtSteps, Motion, axisItems(StepValue)...),
		menu(AdvSet, txtAdvanced, Control,
			back(),
			to(txtHomeOffsets, IconHomeOffset, HomeOff),
			to(txtProbeOffsets, IconProbe, ProbeOff),
			to(txtParkPos, IconPark, ParkPos),
			to(txtRunout, IconRunout, RunOut),
			to(txtBrightness, IconBrightness, Brightness),
			to(txtLoadLength, IconFilament, LoadLength),
			to(txtUnloadLength, IconFilament, UnloadLength),
			to(txtColors, IconPalette, SelColor),
			item{label: txtHotendPID, icon: IconPID, target: stay, cmd: cmdPID, arg: 0, requires: CapHotend},
			item{label: txtBedPID, icon: IconPID, target: stay, cmd: cmdPID, arg: -1, requires: CapBed},
		),
		menu(HomeOff, txtHomeOffsets, AdvSet,
			back(),
			to("X", IconAxis, HomeOffX),
			to("Y", IconAxis, HomeOffY),
			to("Z", IconAxis, HomeOffZ),
		),
		menu(ProbeOff, txtProbeOffsets, AdvSet,
			back(),
			to("X", IconAxis, ProbeOffX),
			to("Y", IconAxis, ProbeOffY),
		),
		menu(ParkPos, txtParkPos, AdvSet,
			back(),
			to("X", IconAxis, ParkPosX),
			to("Y", IconAxis, ParkPosY),
			to("Z", IconAxis, ParkPosZ),
		),
		menu(RunOut, txtRunout, AdvSet,
			back(),
			run(txtRunout, IconRunout, cmdToggleRunout, 0),
		),
		menu(SelColor, txtColors, AdvSet, colorItems()...),
		menu(GetColor, txtColors, SelColor,
			back(),
			run(txtAccept, IconConfirm, cmdAcceptColor, 0),
			toArg(txtRed, IconPalette, GetColorValue, 0),
			toArg(txtGreen, IconPalette, GetColorValue, 1),
			toArg(txtBlue, IconPalette, GetColorValue, 2),
		),
		menu(Reboot, txtReboot, Control,
			back(),
			run(txtConfirm, IconReboot, cmdReboot, 0),
		),
		menu(Info, txtInfo, MainMenu, back()),
		menu(PrintProcess, txtPrinting, MainMenu,
			to(txtTune, IconTune, Tune),
			run(txtPause, IconPause, cmdPauseResume, 0),
			run(txtStop, IconStop, cmdStopPrint, 0),
		),
		menu(Tune, txtTune, PrintProcess,
			back(),
			to(txtSpeed, IconSpeed, PrintSpeed),
			to(txtFlow, IconFlow, TuneFlow),
			to(txtHotend, IconHotend, ETemp),
			to(txtBed, IconBed, BedTemp),
			to(txtFan, IconFan, FanSpeed),
			to(txtZOffset, IconZOffset, Zoffset),
			act(txtChangeFilament, IconFilament, ActChangeFilament, 0, CapHotend),
		),
		menu(PrintDone, txtPrintDone, MainMenu,
			item{label: txtConfirm, icon: IconConfirm, cmd: cmdBack},
		),

		edit(MoveX, txtMoveX, AxisMove),
		edit(MoveY, txtMoveY, AxisMove),
		edit(MoveZ, txtMoveZ, AxisMove),
		edit(Extruder, txtExtruder, AxisMove),
		edit(MMeshMoveZ, txtMeshMoveZ, ManualMesh),
		edit(ETemp, txtHotend, viaParent),
		edit(BedTemp, txtBed, viaParent),
		edit(FanSpeed, txtFan, viaParent),
		edit(Zoffset, txtZOffset, viaParent),
		edit(PrintSpeed, txtSpeed, Tune),
		edit(TuneFlow, txtFlow, Tune),
		edit(PrintFlow, txtFlow, Motion),
		edit(MaxSpeedValue, txtMaxSpeed, MaxSpeed),
		edit(MaxAccelerationValue, txtMaxAccel, MaxAcceleration),
		edit(MaxJerkValue, txtMaxJerk, MaxJerk),
		edit(StepValue, txtSteps, Step),
		edit(HomeOffX, txtHomeOffsets, HomeOff),
		edit(HomeOffY, txtHomeOffsets, HomeOff),
		edit(HomeOffZ, txtHomeOffsets, HomeOff),
		edit(ProbeOffX, txtProbeOffsets, ProbeOff),
		edit(ProbeOffY, txtProbeOffsets, ProbeOff),
		edit(ParkPosX, txtParkPos, ParkPos),
		edit(ParkPosY, txtParkPos, ParkPos),
		edit(ParkPosZ, txtParkPos, ParkPos),
		edit(Brightness, txtBrightness, AdvSet),
		edit(LoadLength, txtLoadLength, AdvSet),
		edit(UnloadLength, txtUnloadLength, AdvSet),
		edit(GetColorValue, txtColors, GetColor),

		popup(Homing, (*Controller).enterHoming),
		popup(Leveling, (*Controller).enterLeveling),
		popup(PauseOrStop, (*Controller).enterPauseOrStop),
		popup(FilamentPurge, (*Controller).enterFilamentPurge),
		popup(WaitResponse, (*Controller).enterWaitResponse),
		popup(NothingToDo, (*Controller).enterNothingToDo),
		popup(PidProcess, (*Controller).enterPidProcess),
		popup(Killed, (*Controller).enterKilled),
	}

	for _, n := range nodes {
		switch n.id {
		case TemperatureID:
			n.enter = showMode(ShowTemperature)
		case PLAPreheat:
			n.enter = showMode(ShowPLA)
		case ABSPreheat:
			n.enter = showMode(ShowABS)
		case Tune:
			n.enter = showMode(ShowTune)
		case SelectFile:
			n.enter = (*Controller).enterSelectFile
		case GetColor:
			n.enter = (*Controller).enterGetColor
		}
	}
	return nodes
}

// buildTable installs every state the capability set supports. Items that
// lead to a missing state or need a missing feature are dropped.
func (c *Controller) buildTable() {
	c.nodes = [NumProcesses]*node{}
	for _, n := range allNodes() {
		if !c.caps.Supports(n.id) {
			continue
		}
		c.nodes[n.id] = n
	}
	for _, n := range c.nodes {
		if n == nil || n.kind != kindMenu {
			continue
		}
		kept := n.items[:0]
		for _, it := range n.items {
			if !c.caps.Has(it.requires) {
				continue
			}
			if it.cmd == cmdEnter && c.nodes[it.target] == nil {
				continue
			}
			kept = append(kept, it)
		}
		n.items = kept
	}
}

// node returns the table entry for p, nil when p is not built
func (c *Controller) node(p ProcessID) *node {
	if p >= NumProcesses {
		return nil
	}
	return c.nodes[p]
}

// parentOf resolves where Back goes from p
func (c *Controller) parentOf(p ProcessID) ProcessID {
	n := c.node(p)
	if n == nil {
		return MainMenu
	}
	switch n.parent {
	case viaParent:
		if v := c.node(c.via); v != nil && v.kind == kindMenu {
			return c.via
		}
		return MainMenu
	case toSaved:
		return c.returnTarget()
	}
	return n.parent
}

// returnTarget is the state a popup returns to: the popup it interrupted,
// or the screen beneath both
func (c *Controller) returnTarget() ProcessID {
	if c.under != noState && c.node(c.under) != nil {
		return c.under
	}
	return c.savedTarget()
}

// savedTarget is the screen beneath the popups
func (c *Controller) savedTarget() ProcessID {
	if n := c.node(c.saved); n != nil && n.kind != kindPopup {
		return c.saved
	}
	return MainMenu
}

// selectArg records the index an item passes to its target screen
func (c *Controller) selectArg(target ProcessID, arg int) {
	switch target {
	case MaxSpeedValue:
		c.Flags.FeedspeedAxis = Axis(arg)
	case MaxAccelerationValue:
		c.Flags.AccAxis = Axis(arg)
	case MaxJerkValue:
		c.Flags.JerkAxis = Axis(arg)
	case StepValue:
		c.Flags.StepAxis = Axis(arg)
	case GetColor:
		c.colorIndex = arg
	case GetColorValue:
		c.colorChannel = arg
	}
}

// selectedArg is the inverse of selectArg for the state just left
func (c *Controller) selectedArg(target ProcessID) int {
	switch target {
	case MaxSpeedValue:
		return int(c.Flags.FeedspeedAxis)
	case MaxAccelerationValue:
		return int(c.Flags.AccAxis)
	case MaxJerkValue:
		return int(c.Flags.JerkAxis)
	case StepValue:
		return int(c.Flags.StepAxis)
	case GetColor:
		return c.colorIndex
	case GetColorValue:
		return c.colorChannel
	}
	return 0
}
