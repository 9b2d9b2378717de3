package gcode

import (
	"strconv"

	"dwinhmi/standalone/model"
)

// Interpreter executes the motion and temperature subset of G-code. Codes
// it does not know are left to the caller (see Handles).
type Interpreter struct {
	state   *model.MachineState
	config  *model.MachineConfig
	planner Planner // Interface to motion planner
	respond func(string)
}

// Planner interface for motion planning
type Planner interface {
	QueueMove(move *model.Move) error
	GetCurrentPosition() model.Position
	SetPosition(pos model.Position)
	ClearQueue()
}

// NewInterpreter creates a new G-code interpreter. respond receives report
// lines (M105, M114) and may be nil.
func NewInterpreter(config *model.MachineConfig, planner Planner, respond func(string)) *Interpreter {
	if respond == nil {
		respond = func(string) {}
	}
	return &Interpreter{
		state: &model.MachineState{
			AbsoluteMode: true,
			FeedRate:     config.DefaultVelocity,
			ExtrudeMode:  false,
			Temperature:  map[string]float64{"extruder": 25, "bed": 25},
			TargetTemp:   map[string]float64{"extruder": 0, "bed": 0},
		},
		config:  config,
		planner: planner,
		respond: respond,
	}
}

// Handles reports whether Execute implements cmd
func Handles(cmd *Command) bool {
	switch cmd.Type {
	case 'G':
		switch cmd.Number {
		case 0, 1, 28, 90, 91, 92:
			return true
		}
	case 'M':
		switch cmd.Number {
		case 82, 83, 104, 105, 109, 114, 140, 190:
			return true
		}
	}
	return false
}

// Execute executes a parsed G-code command
func (interp *Interpreter) Execute(cmd *Command) error {
	if cmd == nil {
		return nil
	}

	switch cmd.Type {
	case 'G':
		return interp.executeG(cmd)
	case 'M':
		return interp.executeM(cmd)
	}

	return nil
}

// executeG handles G-codes
func (interp *Interpreter) executeG(cmd *Command) error {
	switch cmd.Number {
	case 0, 1: // G0/G1 - Linear move
		return interp.doMove(cmd)
	case 28: // G28 - Home
		return interp.doHome(cmd)
	case 90: // G90 - Absolute positioning
		interp.state.AbsoluteMode = true
	case 91: // G91 - Relative positioning
		interp.state.AbsoluteMode = false
	case 92: // G92 - Set position
		return interp.doSetPosition(cmd)
	}

	return nil
}

// executeM handles M-codes
func (interp *Interpreter) executeM(cmd *Command) error {
	switch cmd.Number {
	case 82: // M82 - Absolute extrusion
		interp.state.ExtrudeMode = false
	case 83: // M83 - Relative extrusion
		interp.state.ExtrudeMode = true
	case 104, 109: // M104/M109 - Set extruder temperature (and wait)
		interp.setTarget("extruder", cmd, cmd.Number == 109)
	case 140, 190: // M140/M190 - Set bed temperature (and wait)
		interp.setTarget("bed", cmd, cmd.Number == 190)
	case 114: // M114 - Get current position
		pos := interp.planner.GetCurrentPosition()
		interp.respond("X:" + ftoa(pos.X) + " Y:" + ftoa(pos.Y) + " Z:" + ftoa(pos.Z) + " E:" + ftoa(pos.E) + "\n")
	case 105: // M105 - Get temperature
		interp.respond("T:" + ftoa(interp.state.Temperature["extruder"]) + " /" + ftoa(interp.state.TargetTemp["extruder"]) +
			" B:" + ftoa(interp.state.Temperature["bed"]) + " /" + ftoa(interp.state.TargetTemp["bed"]) + "\n")
	}

	return nil
}

func (interp *Interpreter) setTarget(heater string, cmd *Command, wait bool) {
	if !cmd.HasParameter('S') {
		return
	}
	temp := cmd.GetParameter('S', 0)
	if h, ok := interp.config.Heaters[heater]; ok && temp > h.MaxTemp {
		temp = h.MaxTemp
	}
	if temp < 0 {
		temp = 0
	}
	interp.state.TargetTemp[heater] = temp
	if wait && temp > 0 {
		interp.state.WaitHeater = heater
	}
}

// doMove executes a linear move (G0/G1)
func (interp *Interpreter) doMove(cmd *Command) error {
	current := interp.planner.GetCurrentPosition()
	target := current

	// Update feedrate if specified
	if cmd.HasParameter('F') {
		interp.state.FeedRate = cmd.GetParameter('F', 0) / 60.0 // Convert mm/min to mm/s
	}

	for i, letter := range [3]byte{'X', 'Y', 'Z'} {
		if !cmd.HasParameter(letter) {
			continue
		}
		v := cmd.GetParameter(letter, 0)
		if !interp.state.AbsoluteMode {
			v += current.Axis(i)
		}
		target.SetAxis(i, v)
	}

	// Handle extruder
	if cmd.HasParameter('E') {
		if interp.state.ExtrudeMode {
			target.E = current.E + cmd.GetParameter('E', 0)
		} else {
			target.E = cmd.GetParameter('E', current.E)
		}
	}

	dx := target.X - current.X
	dy := target.Y - current.Y
	dz := target.Z - current.Z
	de := target.E - current.E
	distance := sqrt(dx*dx + dy*dy + dz*dz)

	// Skip if no movement
	if distance < 0.001 && abs(de) < 0.001 {
		return nil
	}

	move := &model.Move{
		Start:    current,
		End:      target,
		Velocity: interp.state.FeedRate,
		Accel:    interp.config.DefaultAccel,
		Distance: distance,
	}

	if err := interp.planner.QueueMove(move); err != nil {
		return err
	}
	interp.state.Position = target
	return nil
}

// doHome executes homing (G28). Homed axes sit at their minimum plus the
// configured home offset.
func (interp *Interpreter) doHome(cmd *Command) error {
	all := !cmd.HasParameter('X') && !cmd.HasParameter('Y') && !cmd.HasParameter('Z')
	pos := interp.planner.GetCurrentPosition()
	for i, letter := range [3]byte{'X', 'Y', 'Z'} {
		if !all && !cmd.HasParameter(letter) {
			continue
		}
		interp.state.Homed[i] = true
		home := interp.config.Axes[model.AxisNames[i]].MinPosition + interp.config.HomeOffset.Axis(i)
		pos.SetAxis(i, home)
	}
	interp.planner.SetPosition(pos)
	interp.state.Position = pos
	return nil
}

// doSetPosition sets the current position (G92)
func (interp *Interpreter) doSetPosition(cmd *Command) error {
	current := interp.planner.GetCurrentPosition()

	for i, letter := range [4]byte{'X', 'Y', 'Z', 'E'} {
		if cmd.HasParameter(letter) {
			current.SetAxis(i, cmd.GetParameter(letter, 0))
		}
	}

	interp.planner.SetPosition(current)
	interp.state.Position = current
	return nil
}

// Unhome clears homing state (M84)
func (interp *Interpreter) Unhome() {
	interp.state.Homed = [4]bool{}
}

// AllHomed reports whether X, Y and Z are homed
func (interp *Interpreter) AllHomed() bool {
	h := interp.state.Homed
	return h[0] && h[1] && h[2]
}

// GetState returns the current machine state
func (interp *Interpreter) GetState() *model.MachineState {
	return interp.state
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Simple math functions (to avoid importing math for embedded)
func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// Newton's method for square root
	z := x
	for i := 0; i < 20; i++ {
		z = z - (z*z-x)/(2*z)
	}
	return z
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
