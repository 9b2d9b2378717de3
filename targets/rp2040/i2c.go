//go:build rp2040

package main

import (
	"machine"

	"dwinhmi/storage"
)

// configureEEPROM brings up the I2C bus the settings EEPROM sits on
func configureEEPROM(offset int64) (*storage.EEPROM, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		SDA:       pinEEPROMSDA,
		SCL:       pinEEPROMSCL,
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewEEPROM(i2c, offset), nil
}
