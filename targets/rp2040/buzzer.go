//go:build rp2040

package main

import "machine"

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetPeriod(period uint64) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// getPWMPeripheral returns the PWM slice driving pin
// RP2040: GPIO pin N maps to slice (N >> 1) & 0x7
func getPWMPeripheral(pin machine.Pin) pwmPeripheral {
	switch (pin >> 1) & 0x7 {
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return machine.PWM0
	}
}

// Buzzer drives a passive piezo with hardware PWM. Tone starts the note and
// returns; Update silences it when its time is up.
type Buzzer struct {
	pwm     pwmPeripheral
	channel uint8
	offAt   uint32
	on      bool
}

// NewBuzzer configures pin for PWM output, silent
func NewBuzzer(pin machine.Pin) (*Buzzer, error) {
	pwm := getPWMPeripheral(pin)
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / 2000}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	pwm.Set(ch, 0)
	return &Buzzer{pwm: pwm, channel: ch}, nil
}

// Tone implements hmi.Buzzer
func (b *Buzzer) Tone(freqHz, durationMs uint16) {
	if freqHz == 0 || durationMs == 0 {
		b.silence()
		return
	}
	if err := b.pwm.SetPeriod(1e9 / uint64(freqHz)); err != nil {
		return
	}
	b.pwm.Set(b.channel, b.pwm.Top()/2)
	b.offAt = NowMs() + uint32(durationMs)
	b.on = true
}

// Update ends a finished tone
func (b *Buzzer) Update(nowMs uint32) {
	if b.on && int32(nowMs-b.offAt) >= 0 {
		b.silence()
	}
}

func (b *Buzzer) silence() {
	b.pwm.Set(b.channel, 0)
	b.on = false
}
