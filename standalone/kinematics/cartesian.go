package kinematics

import (
	"errors"
	"fmt"

	"dwinhmi/standalone/model"
)

var ErrOutOfLimits = errors.New("position out of limits")

// Cartesian implements basic Cartesian kinematics (XYZ 1:1 mapping)
type Cartesian struct {
	limits [3]AxisLimits
}

// NewCartesian creates a new Cartesian kinematics instance
func NewCartesian(config *model.MachineConfig) (*Cartesian, error) {
	k := &Cartesian{}
	for i, name := range model.AxisNames[:3] {
		axis, ok := config.Axes[name]
		if !ok {
			return nil, errors.New(name + " axis not configured")
		}
		if axis.MaxPosition < axis.MinPosition {
			return nil, errors.New(name + " axis limits inverted")
		}
		k.limits[i] = AxisLimits{Min: axis.MinPosition, Max: axis.MaxPosition}
	}
	return k, nil
}

// CalcPosition converts XYZ coordinates to stepper positions
// For Cartesian, this is a 1:1 mapping
func (k *Cartesian) CalcPosition(pos model.Position) ([]float64, error) {
	// Return positions in order: X, Y, Z, E
	return []float64{pos.X, pos.Y, pos.Z, pos.E}, nil
}

// GetAxisNames returns the axis names for Cartesian kinematics
func (k *Cartesian) GetAxisNames() []string {
	return []string{"x", "y", "z", "e"}
}

// CheckLimits validates that a position is within configured limits
func (k *Cartesian) CheckLimits(pos model.Position) error {
	for i, l := range k.limits {
		v := pos.Axis(i)
		if v < l.Min || v > l.Max {
			return fmt.Errorf("%s axis: %w", model.AxisNames[i], ErrOutOfLimits)
		}
	}
	return nil
}

// Clamp moves a position inside the configured limits
func (k *Cartesian) Clamp(pos model.Position) model.Position {
	for i, l := range k.limits {
		pos.SetAxis(i, l.clamp(pos.Axis(i)))
	}
	return pos
}
