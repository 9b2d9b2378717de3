// Package config describes a DWIN HMI installation: which printer features
// the menus offer, edit limits, the panel link and the encoder.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dwinhmi/encoder"
	"dwinhmi/hmi"
)

var ErrUnknownCapability = errors.New("unknown capability")

// Config is the on-disk HMI configuration
type Config struct {
	Capabilities   []string `json:"capabilities" mapstructure:"capabilities"`
	RefreshMs      uint32   `json:"refresh_ms" mapstructure:"refresh_ms"`
	HotendMax      float64  `json:"hotend_max" mapstructure:"hotend_max"`
	BedMax         float64  `json:"bed_max" mapstructure:"bed_max"`
	ExtrudeMinTemp *float64 `json:"extrude_min_temp" mapstructure:"extrude_min_temp"` // nil takes the default; 0 allows cold extrusion
	MachineName    string   `json:"machine_name" mapstructure:"machine_name"`
	BedSize        string   `json:"bed_size" mapstructure:"bed_size"`

	// Machine is the path of a JSON printer description for the simulated
	// printer. Empty selects the stock cartesian machine.
	Machine string `json:"machine" mapstructure:"machine"`

	Panel    PanelConfig    `json:"panel" mapstructure:"panel"`
	Encoder  EncoderConfig  `json:"encoder" mapstructure:"encoder"`
	Settings SettingsConfig `json:"settings" mapstructure:"settings"`
}

// PanelConfig is the serial link to the display
type PanelConfig struct {
	Port string `json:"port" mapstructure:"port"`
	Baud int    `json:"baud" mapstructure:"baud"`
}

type EncoderConfig struct {
	StepsPerDetent int    `json:"steps_per_detent" mapstructure:"steps_per_detent"`
	DebounceMs     uint32 `json:"debounce_ms" mapstructure:"debounce_ms"`
	LongPressMs    uint32 `json:"long_press_ms" mapstructure:"long_press_ms"`
	Reverse        bool   `json:"reverse" mapstructure:"reverse"`
}

// SettingsConfig locates the preference blob
type SettingsConfig struct {
	Path   string `json:"path" mapstructure:"path"`
	Offset int64  `json:"offset" mapstructure:"offset"` // EEPROM byte offset
}

var capabilityNames = map[string]hmi.Capabilities{
	"hotend":          hmi.CapHotend,
	"bed":             hmi.CapBed,
	"fan":             hmi.CapFan,
	"leveling":        hmi.CapLeveling,
	"mesh":            hmi.CapMesh,
	"probe":           hmi.CapProbe,
	"filament_sensor": hmi.CapFilamentSensor,
	"advanced_pause":  hmi.CapAdvancedPause,
	"nozzle_park":     hmi.CapNozzlePark,
	"media":           hmi.CapMedia,
	"all":             hmi.CapAll,
}

// Default returns the configuration of a stock Ender-3 V2
func Default() Config {
	enc := encoder.DefaultConfig()
	return Config{
		Capabilities:   []string{"all"},
		RefreshMs:      1000,
		HotendMax:      275,
		BedMax:         110,
		ExtrudeMinTemp: temp(170),
		MachineName:    "Ender-3 V2",
		BedSize:        "230x230x250",
		Panel:          PanelConfig{Port: "/dev/ttyUSB0", Baud: 115200},
		Encoder: EncoderConfig{
			StepsPerDetent: enc.StepsPerDetent,
			DebounceMs:     enc.DebounceMs,
			LongPressMs:    enc.LongPressMs,
		},
		Settings: SettingsConfig{Path: "dwinhmi-settings.bin"},
	}
}

func temp(v float64) *float64 { return &v }

// LoadConfig parses a JSON configuration. Missing fields take defaults.
func LoadConfig(jsonData []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(jsonData, &c); err != nil {
		return Config{}, fmt.Errorf("hmi config: %w", err)
	}
	applyDefaults(&c)
	if _, err := ParseCapabilities(c.Capabilities); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyDefaults(c *Config) {
	def := Default()
	if c.Capabilities == nil {
		c.Capabilities = def.Capabilities
	}
	if c.RefreshMs == 0 {
		c.RefreshMs = def.RefreshMs
	}
	if c.HotendMax == 0 {
		c.HotendMax = def.HotendMax
	}
	if c.BedMax == 0 {
		c.BedMax = def.BedMax
	}
	if c.ExtrudeMinTemp == nil {
		c.ExtrudeMinTemp = def.ExtrudeMinTemp
	}
	if c.MachineName == "" {
		c.MachineName = def.MachineName
	}
	if c.BedSize == "" {
		c.BedSize = def.BedSize
	}
	if c.Panel.Port == "" {
		c.Panel.Port = def.Panel.Port
	}
	if c.Panel.Baud == 0 {
		c.Panel.Baud = def.Panel.Baud
	}
	if c.Encoder.StepsPerDetent == 0 {
		c.Encoder.StepsPerDetent = def.Encoder.StepsPerDetent
	}
	if c.Encoder.DebounceMs == 0 {
		c.Encoder.DebounceMs = def.Encoder.DebounceMs
	}
	if c.Encoder.LongPressMs == 0 {
		c.Encoder.LongPressMs = def.Encoder.LongPressMs
	}
	if c.Settings.Path == "" {
		c.Settings.Path = def.Settings.Path
	}
}

// ParseCapabilities folds capability names into a set
func ParseCapabilities(names []string) (hmi.Capabilities, error) {
	var caps hmi.Capabilities
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		c, ok := capabilityNames[n]
		if !ok {
			return 0, fmt.Errorf("%q: %w", n, ErrUnknownCapability)
		}
		caps |= c
	}
	return caps, nil
}

// HMI builds the controller configuration
func (c Config) HMI() (hmi.Config, error) {
	caps, err := ParseCapabilities(c.Capabilities)
	if err != nil {
		return hmi.Config{}, err
	}
	h := hmi.DefaultConfig()
	h.Capabilities = caps
	h.RefreshMs = c.RefreshMs
	h.HotendTemp.Max = c.HotendMax
	h.BedTemp.Max = c.BedMax
	if c.ExtrudeMinTemp != nil {
		h.ExtrudeMinTemp = *c.ExtrudeMinTemp
	}
	h.MachineName = c.MachineName
	h.BedSize = c.BedSize
	return h, nil
}

// EncoderConfig returns the knob settings
func (c Config) EncoderConfig() encoder.Config {
	return encoder.Config{
		StepsPerDetent: c.Encoder.StepsPerDetent,
		DebounceMs:     c.Encoder.DebounceMs,
		LongPressMs:    c.Encoder.LongPressMs,
		Reverse:        c.Encoder.Reverse,
	}
}
