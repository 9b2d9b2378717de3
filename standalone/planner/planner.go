package planner

import (
	"dwinhmi/standalone/kinematics"
	"dwinhmi/standalone/model"
	"dwinhmi/standalone/stepgen"
)

// Planner handles motion planning and simulated execution. Time is supplied
// by the caller through Update; moves finish when their duration elapses.
type Planner struct {
	config     *model.MachineConfig
	kinematics kinematics.Kinematics
	steppers   map[string]*stepgen.Stepper

	// Current state
	currentPos  model.Position // end of the last queued move
	moveQueue   []*model.Move
	executing   bool
	moveEnd     uint32
	now         uint32
	speedFactor float64
}

// NewPlanner creates a new motion planner
func NewPlanner(config *model.MachineConfig, kin kinematics.Kinematics) *Planner {
	p := &Planner{
		config:      config,
		kinematics:  kin,
		steppers:    make(map[string]*stepgen.Stepper),
		moveQueue:   make([]*model.Move, 0, 32),
		speedFactor: 1,
	}
	for _, name := range kin.GetAxisNames() {
		if axis, ok := config.Axes[name]; ok {
			p.steppers[name] = stepgen.NewStepper(name, axis.StepsPerMM)
		}
	}
	return p
}

// SetSpeedFactor scales every subsequent move's feedrate (M220)
func (p *Planner) SetSpeedFactor(f float64) {
	if f > 0 {
		p.speedFactor = f
	}
}

// Stepper returns the step counter for an axis
func (p *Planner) Stepper(name string) *stepgen.Stepper {
	return p.steppers[name]
}

// QueueMove adds a move to the queue
func (p *Planner) QueueMove(move *model.Move) error {
	// Check limits
	err := p.kinematics.CheckLimits(move.End)
	if err != nil {
		return err
	}

	// Calculate trapezoidal profile
	p.calculateTrapezoid(move)

	// Add to queue
	p.moveQueue = append(p.moveQueue, move)
	p.currentPos = move.End

	// Start execution if not already running
	if !p.executing {
		p.executeNextMove(p.now)
	}

	return nil
}

// calculateTrapezoid calculates the trapezoidal velocity profile for a move
func (p *Planner) calculateTrapezoid(move *model.Move) {
	if move.Distance <= 0 {
		move.Distance = abs(move.End.E - move.Start.E)
	}
	if move.Distance <= 0 {
		return
	}

	// Limit velocity and acceleration to axis maximums
	maxVel := move.Velocity * p.speedFactor
	accel := move.Accel
	for i, name := range model.AxisNames {
		d := abs(move.End.Axis(i) - move.Start.Axis(i))
		if d == 0 {
			continue
		}
		axisConfig, ok := p.config.Axes[name]
		if !ok {
			continue
		}
		if axisVel := maxVel * d / move.Distance; axisConfig.MaxVelocity > 0 && axisVel > axisConfig.MaxVelocity {
			maxVel = axisConfig.MaxVelocity * move.Distance / d
		}
		if axisAccel := accel * d / move.Distance; axisConfig.MaxAccel > 0 && axisAccel > axisConfig.MaxAccel {
			accel = axisConfig.MaxAccel * move.Distance / d
		}
	}
	if maxVel <= 0 || accel <= 0 {
		return
	}
	move.Velocity = maxVel
	move.Accel = accel

	// Using simplified trapezoidal profile (no lookahead)
	accelDist := (maxVel * maxVel) / (2.0 * accel)

	if accelDist*2.0 >= move.Distance {
		// Triangle profile (can't reach full speed)
		accelDist = move.Distance / 2.0
		move.CruiseVel = sqrt(2.0 * accel * accelDist)

		accelTime := move.CruiseVel / accel
		move.AccelMs = secondsToMs(accelTime)
		move.CruiseMs = 0
		move.DecelMs = move.AccelMs
	} else {
		// Trapezoidal profile
		cruiseDist := move.Distance - 2.0*accelDist
		move.CruiseVel = maxVel

		accelTime := maxVel / accel
		cruiseTime := cruiseDist / maxVel

		move.AccelMs = secondsToMs(accelTime)
		move.CruiseMs = secondsToMs(cruiseTime)
		move.DecelMs = move.AccelMs
	}
	move.Duration = move.AccelMs + move.CruiseMs + move.DecelMs
}

// executeNextMove starts executing the next move in the queue
func (p *Planner) executeNextMove(start uint32) {
	if len(p.moveQueue) == 0 {
		p.executing = false
		return
	}

	move := p.moveQueue[0]
	p.moveQueue = p.moveQueue[1:]
	p.executing = true

	endPositions, err := p.kinematics.CalcPosition(move.End)
	if err == nil {
		for i, name := range p.kinematics.GetAxisNames() {
			if i >= len(endPositions) {
				break
			}
			if stepper, ok := p.steppers[name]; ok {
				stepper.MoveTo(endPositions[i])
			}
		}
	}
	p.moveEnd = start + move.Duration
}

// Update advances simulated time, completing every move whose duration has
// elapsed
func (p *Planner) Update(now uint32) {
	p.now = now
	for p.executing && !before(now, p.moveEnd) {
		for _, stepper := range p.steppers {
			stepper.Finish()
		}
		p.executeNextMove(p.moveEnd)
	}
}

// GetCurrentPosition returns the planned position (end of the last queued move)
func (p *Planner) GetCurrentPosition() model.Position {
	return p.currentPos
}

// ActualPosition returns where the steppers are now
func (p *Planner) ActualPosition() model.Position {
	var pos model.Position
	for i, name := range model.AxisNames {
		if stepper, ok := p.steppers[name]; ok {
			pos.SetAxis(i, stepper.GetPosition())
		}
	}
	return pos
}

// SetPosition sets the current position
func (p *Planner) SetPosition(pos model.Position) {
	p.currentPos = pos

	positions, err := p.kinematics.CalcPosition(pos)
	if err != nil {
		return
	}
	for i, name := range p.kinematics.GetAxisNames() {
		if i >= len(positions) {
			break
		}
		if stepper, ok := p.steppers[name]; ok {
			stepper.SetPosition(positions[i])
		}
	}
}

// ClearQueue clears the move queue and stops all motion where it is
func (p *Planner) ClearQueue() {
	p.moveQueue = p.moveQueue[:0]
	p.executing = false
	for _, stepper := range p.steppers {
		stepper.Stop()
	}
	p.currentPos = p.ActualPosition()
}

// DisableSteppers releases every motor (M84)
func (p *Planner) DisableSteppers() {
	for _, stepper := range p.steppers {
		stepper.Disable()
	}
}

// IsIdle returns true if no moves are queued or executing
func (p *Planner) IsIdle() bool {
	return !p.executing && len(p.moveQueue) == 0
}

// QueueLen returns the number of moves waiting behind the executing one
func (p *Planner) QueueLen() int {
	return len(p.moveQueue)
}

// Helper functions

func before(a, b uint32) bool {
	return int32(a-b) < 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	// Newton's method
	z := x
	for i := 0; i < 20; i++ {
		z = z - (z*z-x)/(2*z)
	}
	return z
}

func secondsToMs(seconds float64) uint32 {
	return uint32(seconds*1000 + 0.5)
}
