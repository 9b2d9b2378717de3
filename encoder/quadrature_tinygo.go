//go:build tinygo && rp2040

package encoder

import (
	"machine"

	"tinygo.org/x/drivers/encoders"
)

// activeLow is a push button wired to ground with the internal pull-up
type activeLow machine.Pin

func (p activeLow) Pressed() bool { return !machine.Pin(p).Get() }

// NewButton configures pin as an active-low push button
func NewButton(pin machine.Pin) Button {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return activeLow(pin)
}

// NewQuadrature decodes the knob with pin-change interrupts
func NewQuadrature(pinA, pinB, button machine.Pin, cfg Config) (*Encoder, error) {
	dev := encoders.NewQuadratureViaInterrupt(pinA, pinB)
	if err := dev.Configure(encoders.QuadratureConfig{Precision: 1}); err != nil {
		return nil, err
	}
	return New(dev, NewButton(button), cfg), nil
}
