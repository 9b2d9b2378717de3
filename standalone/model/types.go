package model

// Position represents a position in machine coordinates
type Position struct {
	X float64
	Y float64
	Z float64
	E float64 // Extruder
}

// Axis returns one coordinate by index (0 X, 1 Y, 2 Z, 3 E)
func (p Position) Axis(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	case 3:
		return p.E
	}
	return 0
}

// SetAxis sets one coordinate by index (0 X, 1 Y, 2 Z, 3 E)
func (p *Position) SetAxis(i int, v float64) {
	switch i {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	case 2:
		p.Z = v
	case 3:
		p.E = v
	}
}

// Move represents a planned move with timing information
type Move struct {
	Start    Position
	End      Position
	Velocity float64 // Max velocity (mm/s)
	Accel    float64 // Acceleration (mm/s^2)
	Distance float64 // Total distance (mm)
	Duration uint32  // Duration in milliseconds

	// Trapezoidal profile parameters
	AccelMs   uint32  // Time spent accelerating
	CruiseMs  uint32  // Time spent at cruise velocity
	DecelMs   uint32  // Time spent decelerating
	CruiseVel float64 // Actual cruise velocity reached
}

// AxisConfig represents configuration for a single axis
type AxisConfig struct {
	StepsPerMM  float64 // Steps per millimeter
	MaxVelocity float64 // Maximum velocity (mm/s)
	MaxAccel    float64 // Maximum acceleration (mm/s^2)
	MaxJerk     float64 // Maximum instantaneous velocity change (mm/s)
	HomingVel   float64 // Homing velocity (mm/s)
	MinPosition float64 // Minimum position (mm)
	MaxPosition float64 // Maximum position (mm)
}

// HeaterConfig represents configuration for a heater
type HeaterConfig struct {
	PID      [3]float64 // PID gains [Kp, Ki, Kd]
	MinTemp  float64    // Minimum safe temperature
	MaxTemp  float64    // Maximum safe temperature
	HeatRate float64    // Simulated heating rate (degrees/s)
}

// Preset is a material preheat profile
type Preset struct {
	Name   string
	Hotend float64
	Bed    float64
	Fan    float64
}

// MachineConfig represents the complete machine configuration
type MachineConfig struct {
	Kinematics string                  // "cartesian"
	Axes       map[string]AxisConfig   // "x", "y", "z", "e"
	Heaters    map[string]HeaterConfig // "extruder", "bed"

	// Global motion parameters
	DefaultVelocity   float64 // Default feedrate (mm/s)
	DefaultAccel      float64 // Default acceleration (mm/s^2)
	JunctionDeviation float64 // Junction deviation for cornering (mm)

	Presets        []Preset
	HomeOffset     Position
	ProbeOffset    Position
	ZOffset        float64
	ParkPosition   Position
	ExtrudeMinTemp float64
	LoadLength     float64
	UnloadLength   float64
	PurgeLength    float64
	MeshGrid       int  // probe points per side for G29
	RunoutSensor   bool // runout detection enabled at boot

	// Files is the simulated media card: file name to G-code text
	Files map[string]string
}

// MachineState represents the current machine state
type MachineState struct {
	Position     Position           // Current position
	Homed        [4]bool            // Homing status [X, Y, Z, E]
	AbsoluteMode bool               // Absolute (G90) vs relative (G91) positioning
	FeedRate     float64            // Current feedrate (mm/s)
	ExtrudeMode  bool               // Relative (M83) vs absolute (M82) extrusion
	Temperature  map[string]float64 // Current temperatures
	TargetTemp   map[string]float64 // Target temperatures
	WaitHeater   string             // heater an M109/M190 is waiting on
}

// AxisNames lists the axis keys in index order
var AxisNames = [4]string{"x", "y", "z", "e"}
