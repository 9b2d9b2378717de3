// Package storage persists the HMI settings blob
package storage

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/at24cx"
)

var ErrShortRead = errors.New("storage: short read")

// EEPROM keeps the settings blob on the board's serial EEPROM (the E3V2
// mainboard carries a 24Cxx part on I2C)
type EEPROM struct {
	dev    at24cx.Device
	offset int64
}

// NewEEPROM configures a 24C32 on bus, which must already be configured.
// The blob lives at offset.
func NewEEPROM(bus drivers.I2C, offset int64) *EEPROM {
	e := &EEPROM{dev: at24cx.New(bus), offset: offset}
	e.dev.Configure(at24cx.Config{PageSize: 32, EndRAMAddress: 4096})
	return e
}

// ReadSettings implements hmi.SettingsStore
func (e *EEPROM) ReadSettings(buf []byte) error {
	n, err := e.dev.ReadAt(buf, e.offset)
	if err != nil {
		return fmt.Errorf("eeprom read: %w", err)
	}
	if n < len(buf) {
		return ErrShortRead
	}
	return nil
}

// WriteSettings implements hmi.SettingsStore
func (e *EEPROM) WriteSettings(buf []byte) error {
	if _, err := e.dev.WriteAt(buf, e.offset); err != nil {
		return fmt.Errorf("eeprom write: %w", err)
	}
	return nil
}
