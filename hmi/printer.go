package hmi

// Setting names a live printer parameter. Some take an index (axis, preset).
type Setting uint8

const (
	SettingHotendTarget Setting = iota
	SettingBedTarget
	SettingFanSpeed
	SettingFeedrate // print speed percent
	SettingFlow     // flow percent
	SettingZOffset
	SettingPosition // index: Axis
	SettingMaxFeedrate
	SettingMaxAccel
	SettingMaxJerk
	SettingStepsPerMM
	SettingHomeOffset  // index: AxisX..AxisZ
	SettingProbeOffset // index: AxisX, AxisY
	SettingPresetHotend
	SettingPresetBed
	SettingPresetFan
	SettingLoadLength
	SettingUnloadLength
	SettingRunout // 1 enabled, 0 disabled
)

// Action is a printer command triggered from a menu or popup
type Action uint8

const (
	ActAutoHome Action = iota + 1
	ActDisableSteppers
	ActPreheat // arg: preset index
	ActCooldown
	ActStoreSettings
	ActRestoreSettings
	ActResetSettings
	ActReboot
	ActPIDTune // arg: 0 hotend, -1 bed
	ActPark
	ActChangeFilament
	ActLoadFilament
	ActUnloadFilament
	ActMoveToCorner // arg: 0..3 corners, 4 center
	ActMeshStart
	ActMeshNext
	ActMeshSave
	ActAutoLevel
	ActPause
	ActResume
	ActStop
	ActPurgeMore
	ActPurgeDone
	ActUserContinue
	ActStartPrint // arg: index into Files()
)

// PIDResult is reported by the control loop during PID autotune
type PIDResult uint8

const (
	PIDBadExtruderNum PIDResult = iota
	PIDTempTooHigh
	PIDTuningTimeout
	PIDExtruderStart
	PIDBedStart
	PIDDone
)

// Status is a snapshot of the readouts shown on every screen
type Status struct {
	HotendTemp    float64
	HotendTarget  float64
	BedTemp       float64
	BedTarget     float64
	FanSpeed      float64
	Feedrate      float64
	Flow          float64
	ZOffset       float64
	Printing      bool
	Paused        bool
	MediaInserted bool
}

// Printer is the printer-control loop as seen from the UI
type Printer interface {
	Status() Status
	Setting(s Setting, index int) float64
	SetSetting(s Setting, index int, v float64)
	Do(a Action, arg int) error
	Files() []string
}
