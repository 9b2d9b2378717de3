//go:build !tinygo

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadFile reads configuration from path (JSON, TOML or YAML by extension)
// and from the environment. Env var overrides use prefix DWINHMI_, with
// nested keys joined by underscores: DWINHMI_PANEL_PORT. An empty path
// reads the environment only.
func LoadFile(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("capabilities", def.Capabilities)
	v.SetDefault("refresh_ms", def.RefreshMs)
	v.SetDefault("hotend_max", def.HotendMax)
	v.SetDefault("bed_max", def.BedMax)
	v.SetDefault("extrude_min_temp", *def.ExtrudeMinTemp)
	v.SetDefault("machine_name", def.MachineName)
	v.SetDefault("bed_size", def.BedSize)
	v.SetDefault("machine", "")
	v.SetDefault("panel.port", def.Panel.Port)
	v.SetDefault("panel.baud", def.Panel.Baud)
	v.SetDefault("encoder.steps_per_detent", def.Encoder.StepsPerDetent)
	v.SetDefault("encoder.debounce_ms", def.Encoder.DebounceMs)
	v.SetDefault("encoder.long_press_ms", def.Encoder.LongPressMs)
	v.SetDefault("encoder.reverse", false)
	v.SetDefault("settings.path", def.Settings.Path)
	v.SetDefault("settings.offset", 0)

	v.SetEnvPrefix("DWINHMI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&c)
	if _, err := ParseCapabilities(c.Capabilities); err != nil {
		return Config{}, err
	}
	return c, nil
}
