package stepgen

// Stepper counts the steps a simulated motor would take. Positions are
// quantized to whole steps so steps/mm changes show up in reported positions.
type Stepper struct {
	name       string
	stepsPerMM float64

	position  int64 // Current position in steps
	targetPos int64 // Target position in steps
	steps     uint64
	enabled   bool
	active    bool
}

// NewStepper creates a new stepper motor counter
func NewStepper(name string, stepsPerMM float64) *Stepper {
	if stepsPerMM <= 0 {
		stepsPerMM = 1
	}
	return &Stepper{name: name, stepsPerMM: stepsPerMM}
}

func (s *Stepper) Name() string { return s.name }

// StepsPerMM returns the current resolution
func (s *Stepper) StepsPerMM() float64 { return s.stepsPerMM }

// SetStepsPerMM changes the resolution, keeping the position in millimeters
func (s *Stepper) SetStepsPerMM(v float64) {
	if v <= 0 {
		return
	}
	mm := s.GetPosition()
	s.stepsPerMM = v
	s.SetPosition(mm)
}

// Enable enables the stepper motor
func (s *Stepper) Enable() { s.enabled = true }

// Disable disables the stepper motor
func (s *Stepper) Disable() { s.enabled = false }

// Enabled reports whether the motor holds its position
func (s *Stepper) Enabled() bool { return s.enabled }

// MoveTo starts a move to the target position and returns the step count
func (s *Stepper) MoveTo(targetMM float64) int64 {
	s.targetPos = s.toSteps(targetMM)
	s.Enable()
	n := s.targetPos - s.position
	if n < 0 {
		n = -n
	}
	s.active = n != 0
	return n
}

// Finish completes the current move
func (s *Stepper) Finish() {
	if !s.active {
		return
	}
	n := s.targetPos - s.position
	if n < 0 {
		n = -n
	}
	s.steps += uint64(n)
	s.position = s.targetPos
	s.active = false
}

// GetPosition returns the current position in millimeters
func (s *Stepper) GetPosition() float64 {
	return float64(s.position) / s.stepsPerMM
}

// GetSteps returns the current position in steps
func (s *Stepper) GetSteps() int64 { return s.position }

// TotalSteps returns the number of steps taken since creation
func (s *Stepper) TotalSteps() uint64 { return s.steps }

// SetPosition sets the current position (for homing, etc.)
func (s *Stepper) SetPosition(posMM float64) {
	s.position = s.toSteps(posMM)
	s.targetPos = s.position
}

// IsActive returns whether the stepper is currently moving
func (s *Stepper) IsActive() bool {
	return s.active
}

// Stop immediately stops the stepper
func (s *Stepper) Stop() {
	s.active = false
	s.targetPos = s.position
}

func (s *Stepper) toSteps(mm float64) int64 {
	v := mm * s.stepsPerMM
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}
