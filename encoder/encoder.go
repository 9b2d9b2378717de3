// Package encoder turns a rotary encoder with a push button into HMI input
// events.
package encoder

import "dwinhmi/hmi"

// Counter reports the accumulated quadrature count of the knob
type Counter interface {
	Position() int
}

// Button reports whether the knob is pressed
type Button interface {
	Pressed() bool
}

// Config tunes the event decoder
type Config struct {
	StepsPerDetent int    // quadrature counts per click of the knob
	DebounceMs     uint32 // button level must hold this long
	LongPressMs    uint32 // hold time that turns a press into a long press
	Reverse        bool   // swap rotation direction
}

// DefaultConfig matches the Ender-3 V2 knob
func DefaultConfig() Config {
	return Config{StepsPerDetent: 4, DebounceMs: 20, LongPressMs: 800}
}

// Encoder implements hmi.InputSource. Each ReadInput call returns at most
// one event; button events win over rotation.
type Encoder struct {
	counter Counter
	button  Button
	cfg     Config

	last    int // count at the last emitted detent
	pending int // detents not yet reported, signed

	raw       bool
	rawSince  uint32
	stable    bool
	pressedAt uint32
	longSent  bool
}

// New creates an encoder. The button may be nil for a knob without one.
func New(c Counter, b Button, cfg Config) *Encoder {
	if c == nil {
		panic("encoder: counter is nil")
	}
	if cfg.StepsPerDetent <= 0 {
		cfg.StepsPerDetent = 1
	}
	return &Encoder{counter: c, button: b, cfg: cfg, last: c.Position()}
}

// ReadInput implements hmi.InputSource
func (e *Encoder) ReadInput(nowMs uint32) hmi.Input {
	if in := e.pollButton(nowMs); in != hmi.InputNone {
		return in
	}
	e.pollRotation()
	switch {
	case e.pending > 0:
		e.pending--
		return e.direction(hmi.InputRotateRight, hmi.InputRotateLeft)
	case e.pending < 0:
		e.pending++
		return e.direction(hmi.InputRotateLeft, hmi.InputRotateRight)
	}
	return hmi.InputNone
}

func (e *Encoder) direction(fwd, rev hmi.Input) hmi.Input {
	if e.cfg.Reverse {
		return rev
	}
	return fwd
}

func (e *Encoder) pollRotation() {
	delta := e.counter.Position() - e.last
	detents := delta / e.cfg.StepsPerDetent
	if detents == 0 {
		return
	}
	e.last += detents * e.cfg.StepsPerDetent
	e.pending += detents
}

func (e *Encoder) pollButton(now uint32) hmi.Input {
	if e.button == nil {
		return hmi.InputNone
	}
	raw := e.button.Pressed()
	if raw != e.raw {
		e.raw = raw
		e.rawSince = now
	}
	if raw != e.stable && now-e.rawSince >= e.cfg.DebounceMs {
		e.stable = raw
		if raw {
			e.pressedAt = now
			e.longSent = false
			return hmi.InputNone
		}
		if !e.longSent {
			return hmi.InputClick
		}
		return hmi.InputNone
	}
	if e.stable && !e.longSent && e.cfg.LongPressMs > 0 && now-e.pressedAt >= e.cfg.LongPressMs {
		e.longSent = true
		return hmi.InputLongPress
	}
	return hmi.InputNone
}

// transitions is indexed by (previous AB << 2 | current AB)
var transitions = [16]int8{0, -1, 1, 0, 1, 0, 0, -1, -1, 0, 0, 1, 0, 1, -1, 0}

// Decoder is a software quadrature decoder fed with pin samples
type Decoder struct {
	state uint8
	count int
}

// Feed records one sample of the A and B lines
func (d *Decoder) Feed(a, b bool) {
	ab := uint8(0)
	if a {
		ab |= 2
	}
	if b {
		ab |= 1
	}
	d.state = (d.state<<2 | ab) & 0x0f
	d.count += int(transitions[d.state])
}

// Position implements Counter
func (d *Decoder) Position() int { return d.count }
