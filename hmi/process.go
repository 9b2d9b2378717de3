package hmi

// ProcessID identifies the active screen or popup. Exactly one is active at a
// time; it decides what gets drawn and what the next input means.
type ProcessID uint8

const (
	MainMenu ProcessID = iota
	SelectFile
	Prepare
	Control
	PrintProcess
	PrintDone
	FilamentMan
	AxisMove
	ManualLev
	ManualMesh
	MMeshMoveZ
	TemperatureID
	Motion
	Reboot
	Info
	Tune
	TuneFlow
	PLAPreheat
	ABSPreheat
	MaxSpeed
	MaxSpeedValue
	MaxAcceleration
	MaxAccelerationValue
	MaxJerk
	MaxJerkValue
	Step
	StepValue
	HomeOff
	HomeOffX
	HomeOffY
	HomeOffZ
	AdvSet
	ProbeOff
	ProbeOffX
	ProbeOffY
	ParkPos
	ParkPosX
	ParkPosY
	ParkPosZ
	RunOut
	Brightness
	LoadLength
	UnloadLength
	SelColor
	GetColor
	GetColorValue
	MoveX
	MoveY
	MoveZ
	Extruder
	ETemp
	Zoffset
	BedTemp
	FanSpeed
	PrintSpeed
	PrintFlow

	// Popups
	Homing
	Leveling
	PauseOrStop
	FilamentPurge
	WaitResponse
	NothingToDo
	PidProcess
	Killed

	NumProcesses
)

// Pseudo targets used by the transition table. Never stored as current.
const (
	anyState  ProcessID = 0xFF
	stay      ProcessID = 0xFE
	toSaved   ProcessID = 0xFD
	viaParent ProcessID = 0xFC
	noParent  ProcessID = 0xFB
	noState   ProcessID = 0xFA
)

var processNames = [NumProcesses]string{
	"MainMenu", "SelectFile", "Prepare", "Control", "PrintProcess", "PrintDone",
	"FilamentMan", "AxisMove", "ManualLev", "ManualMesh", "MMeshMoveZ",
	"TemperatureID", "Motion", "Reboot", "Info", "Tune", "TuneFlow",
	"PLAPreheat", "ABSPreheat", "MaxSpeed", "MaxSpeedValue", "MaxAcceleration",
	"MaxAccelerationValue", "MaxJerk", "MaxJerkValue", "Step", "StepValue",
	"HomeOff", "HomeOffX", "HomeOffY", "HomeOffZ", "AdvSet", "ProbeOff",
	"ProbeOffX", "ProbeOffY", "ParkPos", "ParkPosX", "ParkPosY", "ParkPosZ",
	"RunOut", "Brightness", "LoadLength", "UnloadLength", "SelColor",
	"GetColor", "GetColorValue", "MoveX", "MoveY", "MoveZ", "Extruder",
	"ETemp", "Zoffset", "BedTemp", "FanSpeed", "PrintSpeed", "PrintFlow",
	"Homing", "Leveling", "PauseOrStop", "FilamentPurge", "WaitResponse",
	"NothingToDo", "PidProcess", "Killed",
}

func (p ProcessID) String() string {
	if p < NumProcesses {
		return processNames[p]
	}
	return "ProcessID(" + itoa(int(p)) + ")"
}

// IsPopup reports whether p is a modal popup
func (p ProcessID) IsPopup() bool {
	return p >= Homing && p < NumProcesses
}

// Capabilities is the set of hardware features present on the printer.
// States that need a missing feature are not built into the table.
type Capabilities uint16

const (
	CapHotend Capabilities = 1 << iota
	CapBed
	CapFan
	CapLeveling       // bed probe with automatic leveling
	CapMesh           // manual mesh editing
	CapProbe          // probe offsets
	CapFilamentSensor // runout sensor
	CapAdvancedPause  // filament load/unload/purge
	CapNozzlePark
	CapMedia // SD card

	CapAll = CapHotend | CapBed | CapFan | CapLeveling | CapMesh | CapProbe |
		CapFilamentSensor | CapAdvancedPause | CapNozzlePark | CapMedia
)

// Has reports whether every feature in f is present
func (c Capabilities) Has(f Capabilities) bool {
	return c&f == f
}

// Supports reports whether state p exists under this capability set
func (c Capabilities) Supports(p ProcessID) bool {
	if p >= NumProcesses {
		return false
	}
	switch p {
	case PLAPreheat, ABSPreheat:
		return c&(CapHotend|CapBed|CapFan) != 0
	}
	return c.Has(processRequires(p))
}

func processRequires(p ProcessID) Capabilities {
	switch p {
	case Extruder, ETemp, FilamentMan:
		return CapHotend
	case BedTemp:
		return CapBed
	case FanSpeed:
		return CapFan
	case Leveling:
		return CapLeveling
	case ManualMesh, MMeshMoveZ:
		return CapMesh
	case ProbeOff, ProbeOffX, ProbeOffY:
		return CapProbe
	case RunOut:
		return CapFilamentSensor
	case LoadLength, UnloadLength, FilamentPurge:
		return CapAdvancedPause
	case ParkPos, ParkPosX, ParkPosY, ParkPosZ:
		return CapNozzlePark
	case SelectFile:
		return CapMedia
	}
	return 0
}
