//go:build rp2040

package main

import "machine"

// Board wiring
const (
	pinPanelTX   = machine.GPIO0
	pinPanelRX   = machine.GPIO1
	pinEEPROMSDA = machine.GPIO4
	pinEEPROMSCL = machine.GPIO5
	pinEncoderA  = machine.GPIO10 // B must be the next pin for the PIO sampler
	pinEncoderB  = machine.GPIO11
	pinEncoderSW = machine.GPIO12
	pinBuzzer    = machine.GPIO15
)

// ModeConfig determines how the encoder is decoded
type ModeConfig struct {
	// Set to true to sample the knob with a PIO state machine
	// Set to false to use pin-change interrupts
	PIOEncoder bool
}

// GetMode returns the current mode configuration
// This can be modified at compile time or runtime
func GetMode() ModeConfig {
	return ModeConfig{
		PIOEncoder: true,
	}
}
