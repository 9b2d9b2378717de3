package kinematics

import "dwinhmi/standalone/model"

// Kinematics defines the interface for coordinate transformations
type Kinematics interface {
	// CalcPosition converts XYZ coordinates to stepper positions
	CalcPosition(pos model.Position) ([]float64, error)

	// GetAxisNames returns the names of axes controlled by this kinematics
	GetAxisNames() []string

	// CheckLimits validates that a position is within configured limits
	CheckLimits(pos model.Position) error

	// Clamp moves a position inside the configured limits
	Clamp(pos model.Position) model.Position
}

// AxisLimits represents position limits for an axis
type AxisLimits struct {
	Min float64
	Max float64
}

func (l AxisLimits) clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}
