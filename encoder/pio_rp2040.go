//go:build rp2040

package encoder

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// The sampler program shifts both encoder lines into the ISR forever.
// Autopush hands the CPU one word per 16 samples:
//
//	Bits 31-30: oldest sample (bit 0 = A, bit 1 = B)
//	Bits 1-0:   newest sample
//
// buildSamplerProgram creates the program using AssemblerV0
func buildSamplerProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.In(rp2pio.InSrcPins, 2).Encode(), // 0: in pins, 2
		// .wrap
	}
}

const (
	samplerOrigin = -1
	// about 1.9k samples per second at 125MHz; a full FIFO holds 60ms
	samplerClkDiv = 65535
)

// PIOSampler decodes the knob from a PIO state machine sampling two
// consecutive pins, leaving the pins free of interrupts
type PIOSampler struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	pinA   machine.Pin
	offset uint8
	dec    Decoder
}

// NewPIOSampler creates a sampler on the given block (0 or 1) and state
// machine (0-3)
func NewPIOSampler(pioNum, smNum uint8) *PIOSampler {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}
	return &PIOSampler{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init starts sampling pinA and pinA+1
func (s *PIOSampler) Init(pinA machine.Pin) error {
	s.pinA = pinA
	s.sm.TryClaim()

	program := buildSamplerProgram()
	offset, err := s.pio.AddProgram(program, samplerOrigin)
	if err != nil {
		return err
	}
	s.offset = offset

	for _, p := range []machine.Pin{pinA, pinA + 1} {
		p.Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(pinA)
	// shift left so the newest sample lands in the low bits
	cfg.SetInShift(false, true, 32)
	cfg.SetFIFOJoin(rp2pio.FifoJoinRx)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(samplerClkDiv, 0)

	s.sm.Init(offset, cfg)
	s.sm.SetPindirsConsecutive(pinA, 2, false)
	s.sm.SetEnabled(true)

	// the lines idle high with the pull-ups
	s.dec.Feed(true, true)
	return nil
}

// Poll drains the RX FIFO into the decoder
func (s *PIOSampler) Poll() {
	for !s.sm.IsRxFIFOEmpty() {
		s.decode(s.sm.RxGet())
	}
}

func (s *PIOSampler) decode(word uint32) {
	for shift := 30; shift >= 0; shift -= 2 {
		v := word >> uint(shift)
		s.dec.Feed(v&1 != 0, v&2 != 0)
	}
}

// Position implements Counter
func (s *PIOSampler) Position() int {
	s.Poll()
	return s.dec.Position()
}

// NewPIO decodes the knob on pinA and pinA+1 with a PIO state machine
func NewPIO(pioNum, smNum uint8, pinA, button machine.Pin, cfg Config) (*Encoder, error) {
	s := NewPIOSampler(pioNum, smNum)
	if err := s.Init(pinA); err != nil {
		return nil, err
	}
	return New(s, NewButton(button), cfg), nil
}
