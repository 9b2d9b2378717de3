package hmi

import (
	"encoding/binary"
	"errors"
	"math"

	"dwinhmi/protocol"
)

// Settings blob layout, version 1, little-endian:
//
//	[0]      magic 'D'
//	[1]      layout version
//	[2:4]    CRC16 of [4:64]
//	[4]      brightness
//	[5:17]   park point X, Y, Z as float32
//	[17:53]  palette, 18 x RGB565
//	[53:64]  reserved, zero
const (
	SettingsSize    = 64
	SettingsVersion = 1

	settingsMagic    = 'D'
	offsetCRC        = 2
	offsetPayload    = 4
	offsetBrightness = 4
	offsetPark       = 5
	offsetColors     = 17
	offsetReserved   = offsetColors + 2*NumColors
)

var (
	ErrSettingsBuffer  = errors.New("settings buffer too small")
	ErrSettingsMagic   = errors.New("settings magic mismatch")
	ErrSettingsVersion = errors.New("unsupported settings version")
	ErrSettingsCRC     = errors.New("settings checksum mismatch")
)

// Encode serializes p into buf, which must hold SettingsSize bytes
func (p *Preferences) Encode(buf []byte) error {
	if len(buf) < SettingsSize {
		return ErrSettingsBuffer
	}
	buf = buf[:SettingsSize]
	for i := range buf {
		buf[i] = 0
	}

	buf[0] = settingsMagic
	buf[1] = SettingsVersion
	buf[offsetBrightness] = p.Brightness
	for i, v := range p.ParkPoint {
		binary.LittleEndian.PutUint32(buf[offsetPark+4*i:], math.Float32bits(v))
	}
	for i, c := range p.Colors {
		binary.LittleEndian.PutUint16(buf[offsetColors+2*i:], c)
	}
	binary.LittleEndian.PutUint16(buf[offsetCRC:], protocol.CRC16(buf[offsetPayload:]))
	return nil
}

// Decode replaces p with the contents of buf. On any error p is untouched.
func (p *Preferences) Decode(buf []byte) error {
	if len(buf) < SettingsSize {
		return ErrSettingsBuffer
	}
	buf = buf[:SettingsSize]
	if buf[0] != settingsMagic {
		return ErrSettingsMagic
	}
	if buf[1] != SettingsVersion {
		return ErrSettingsVersion
	}
	if binary.LittleEndian.Uint16(buf[offsetCRC:]) != protocol.CRC16(buf[offsetPayload:]) {
		return ErrSettingsCRC
	}

	var next Preferences
	next.Brightness = buf[offsetBrightness]
	for i := range next.ParkPoint {
		next.ParkPoint[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[offsetPark+4*i:]))
	}
	for i := range next.Colors {
		next.Colors[i] = binary.LittleEndian.Uint16(buf[offsetColors+2*i:])
	}
	*p = next
	return nil
}
