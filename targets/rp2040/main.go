//go:build rp2040

package main

import (
	"machine"
	"time"

	"dwinhmi/config"
	"dwinhmi/encoder"
	"dwinhmi/hmi"
	"dwinhmi/session"
)

var (
	// Debug counters
	loopPanics uint32
	tickErrors uint32
)

func main() {
	// CRITICAL: Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// USB CDC carries the G-code console and debug output
	InitUSB()
	hmi.SetDebugWriter(func(s string) {
		USBWriteBytes([]byte(s + "\r\n"))
	})

	cfg := config.Default()
	hmiCfg, err := cfg.HMI()
	if err != nil {
		fatal()
	}

	hw, display, err := configurePanel(uint32(cfg.Panel.Baud))
	if err != nil {
		fatal()
	}
	if err := waitHandshake(hw, display, 5*time.Second); err != nil {
		// Keep going: a panel that missed the handshake still draws
		hmi.DebugPrintln("[BOOT] " + err.Error())
	}

	input, err := newEncoder(cfg.EncoderConfig())
	if err != nil {
		fatal()
	}

	opts := session.Options{
		HMI:     hmiCfg,
		Display: display,
		Input:   input,
	}
	if eeprom, err := configureEEPROM(cfg.Settings.Offset); err == nil {
		opts.Store = eeprom
	}
	buzzer, err := NewBuzzer(pinBuzzer)
	if err == nil {
		opts.Buzzer = buzzer
	}

	sess, err := session.New(opts, NowMs())
	if err != nil {
		fatal()
	}

	// Main loop - one cooperative context for the HMI and the printer
	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
				}
			}()

			now := NowMs()
			if err := sess.Tick(now); err != nil {
				tickErrors++
			}
			if buzzer != nil {
				buzzer.Update(now)
			}
			serviceConsole(sess)
		}()

		// Yield to other goroutines
		time.Sleep(time.Millisecond)
	}
}

func newEncoder(cfg encoder.Config) (*encoder.Encoder, error) {
	if GetMode().PIOEncoder {
		return encoder.NewPIO(0, 0, pinEncoderA, pinEncoderSW, cfg)
	}
	return encoder.NewQuadrature(pinEncoderA, pinEncoderB, pinEncoderSW, cfg)
}

// fatal flashes the LED rapidly forever
func fatal() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
