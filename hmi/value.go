package hmi

// Axis selects which axis a speed, acceleration, jerk or step edit targets
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisE
	NumAxes
)

func (a Axis) String() string {
	if a < NumAxes {
		return "XYZE"[a : a+1]
	}
	return "?"
}

// ShowMode values: which temperature set ETemp/BedTemp/FanSpeed edit
const (
	ShowTemperature int8 = -1 // live targets from the temperature menu
	ShowTune        int8 = 0  // live targets while printing
	ShowPLA         int8 = 1  // preset 0
	ShowABS         int8 = 2  // preset 1
)

// Value is the scratch model for numeric edits. Only the field belonging to
// the active edit state is live; it is loaded on entry and written back to
// the printer only on confirm.
type Value struct {
	ETemp           float64
	BedTemp         float64
	FanSpeed        float64
	PrintSpeed      float64
	MaxFeedspeed    float64
	MaxAcceleration float64
	MaxJerk         float64
	MaxStep         float64
	MoveX           float64
	MoveY           float64
	MoveZ           float64
	MoveE           float64
	ZOffset         float64
	ShowMode        int8
	HomeOffX        float64
	HomeOffY        float64
	HomeOffZ        float64
	ProbeOffX       float64
	ProbeOffY       float64
	ParkPosX        float64
	ParkPosY        float64
	ParkPosZ        float64
	PrintFlow       float64
	Brightness      float64
	LoadLength      float64
	UnloadLength    float64
	Color           [3]float64
}

// DefaultValue returns the power-on value model
func DefaultValue() Value {
	return Value{
		PrintSpeed: 100,
		PrintFlow:  100,
		Brightness: DefaultBrightness,
		ShowMode:   ShowTemperature,
	}
}
