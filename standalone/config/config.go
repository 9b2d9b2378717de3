package config

import (
	"encoding/json"
	"fmt"

	"dwinhmi/standalone/model"
)

// LoadConfig parses a JSON configuration string and returns a MachineConfig
func LoadConfig(jsonData []byte) (*model.MachineConfig, error) {
	var config model.MachineConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, fmt.Errorf("machine config: %w", err)
	}

	// Apply defaults
	applyDefaults(&config)

	return &config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *model.MachineConfig) {
	def := DefaultCartesianConfig()

	if config.Kinematics == "" {
		config.Kinematics = "cartesian"
	}

	// Default motion parameters
	if config.DefaultVelocity == 0 {
		config.DefaultVelocity = 50.0 // 50 mm/s
	}
	if config.DefaultAccel == 0 {
		config.DefaultAccel = 500.0 // 500 mm/s^2
	}
	if config.JunctionDeviation == 0 {
		config.JunctionDeviation = 0.05 // 0.05mm
	}

	// Missing axes take the default machine's, present ones get per-field defaults
	if config.Axes == nil {
		config.Axes = make(map[string]model.AxisConfig)
	}
	for _, name := range model.AxisNames {
		axis, ok := config.Axes[name]
		if !ok {
			config.Axes[name] = def.Axes[name]
			continue
		}
		if axis.MaxVelocity == 0 {
			axis.MaxVelocity = 300.0
		}
		if axis.MaxAccel == 0 {
			axis.MaxAccel = 1000.0
		}
		if axis.MaxJerk == 0 {
			axis.MaxJerk = 8.0
		}
		if axis.HomingVel == 0 && name != "e" {
			axis.HomingVel = 5.0
		}
		if axis.StepsPerMM == 0 {
			axis.StepsPerMM = 80.0 // Common value
		}
		config.Axes[name] = axis
	}

	if config.Heaters == nil {
		config.Heaters = make(map[string]model.HeaterConfig)
	}
	for _, name := range []string{"extruder", "bed"} {
		heater, ok := config.Heaters[name]
		if !ok {
			heater = def.Heaters[name]
		}
		if heater.MaxTemp == 0 {
			heater.MaxTemp = 300.0
		}
		if heater.HeatRate == 0 {
			heater.HeatRate = 2.0
		}
		config.Heaters[name] = heater
	}

	if len(config.Presets) == 0 {
		config.Presets = def.Presets
	}
	if config.ExtrudeMinTemp == 0 {
		config.ExtrudeMinTemp = def.ExtrudeMinTemp
	}
	if config.LoadLength == 0 {
		config.LoadLength = def.LoadLength
	}
	if config.UnloadLength == 0 {
		config.UnloadLength = def.UnloadLength
	}
	if config.PurgeLength == 0 {
		config.PurgeLength = def.PurgeLength
	}
	if config.MeshGrid == 0 {
		config.MeshGrid = def.MeshGrid
	}
	if config.ParkPosition == (model.Position{}) {
		config.ParkPosition = def.ParkPosition
	}
	if config.Files == nil {
		config.Files = def.Files
	}
}

// DefaultCartesianConfig returns the configuration of a stock Ender-3 V2
func DefaultCartesianConfig() *model.MachineConfig {
	return &model.MachineConfig{
		Kinematics: "cartesian",
		Axes: map[string]model.AxisConfig{
			"x": {
				StepsPerMM:  80.0,
				MaxVelocity: 500.0,
				MaxAccel:    500.0,
				MaxJerk:     8.0,
				HomingVel:   50.0,
				MinPosition: 0.0,
				MaxPosition: 230.0,
			},
			"y": {
				StepsPerMM:  80.0,
				MaxVelocity: 500.0,
				MaxAccel:    500.0,
				MaxJerk:     8.0,
				HomingVel:   50.0,
				MinPosition: 0.0,
				MaxPosition: 230.0,
			},
			"z": {
				StepsPerMM:  400.0,
				MaxVelocity: 5.0,
				MaxAccel:    100.0,
				MaxJerk:     0.4,
				HomingVel:   4.0,
				MinPosition: 0.0,
				MaxPosition: 250.0,
			},
			"e": {
				StepsPerMM:  93.0,
				MaxVelocity: 25.0,
				MaxAccel:    5000.0,
				MaxJerk:     5.0,
				MinPosition: -100000.0,
				MaxPosition: 100000.0,
			},
		},
		Heaters: map[string]model.HeaterConfig{
			"extruder": {
				PID:      [3]float64{28.72, 2.62, 78.81},
				MaxTemp:  275.0,
				HeatRate: 4.0,
			},
			"bed": {
				PID:      [3]float64{462.10, 85.47, 624.59},
				MaxTemp:  110.0,
				HeatRate: 1.0,
			},
		},
		DefaultVelocity:   50.0,
		DefaultAccel:      500.0,
		JunctionDeviation: 0.05,
		Presets: []model.Preset{
			{Name: "PLA", Hotend: 200, Bed: 60, Fan: 255},
			{Name: "ABS", Hotend: 240, Bed: 100, Fan: 0},
		},
		ParkPosition:   model.Position{X: 220, Y: 220, Z: 50},
		ProbeOffset:    model.Position{X: -40, Y: -10},
		ExtrudeMinTemp: 170,
		LoadLength:     100,
		UnloadLength:   100,
		PurgeLength:    50,
		MeshGrid:       3,
		RunoutSensor:   true,
		Files: map[string]string{
			"cube.gcode": "M117 Printing cube\nM140 S60\nM104 S200\nM190 S60\nM109 S200\nG28\n" +
				"G1 Z0.2 F600\nG1 X20 Y20 F3000\nG1 X40 E2\nG1 Y40 E2\nG1 X20 E2\nG1 Y20 E2\n" +
				"G1 Z0.4\nG1 X40 E2\nG1 Y40 E2\nG1 X20 E2\nG1 Y20 E2\nM104 S0\nM140 S0\n",
			"wipe.gcode": "G28\nG1 Z5 F600\nG1 X0 Y0 F6000\nG1 X200 F6000\nG1 X0\nM117 Wipe done\n",
		},
	}
}
