package hmi

import "math"

// Limits bounds an editable value
type Limits struct {
	Min float64
	Max float64
}

// Clamp returns v limited to [Min, Max]. NaN clamps to Min.
func (l Limits) Clamp(v float64) float64 {
	if v < l.Min || math.IsNaN(v) {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// Config holds the build-time choices of a controller: hardware present,
// edit ranges and refresh cadence.
type Config struct {
	Capabilities Capabilities
	RefreshMs    uint32 // readout refresh period

	HotendTemp     Limits
	BedTemp        Limits
	FanSpeed       Limits
	PrintSpeed     Limits
	PrintFlow      Limits
	MaxFeedrate    [NumAxes]Limits
	MaxAccel       [NumAxes]Limits
	MaxJerk        [NumAxes]Limits
	StepsPerMM     [NumAxes]Limits
	Move           [NumAxes]Limits
	ZOffset        Limits
	HomeOffset     Limits
	ProbeOffset    Limits
	ParkPos        [3]Limits
	FilamentLength Limits
	Brightness     Limits
	ExtrudeMinTemp float64 // Extruder moves are refused below this

	MachineName string
	BedSize     string
	Contact     string
}

// DefaultConfig returns limits for an Ender-3 V2 class machine
func DefaultConfig() Config {
	return Config{
		Capabilities:   CapAll,
		RefreshMs:      1000,
		HotendTemp:     Limits{0, 275},
		BedTemp:        Limits{0, 110},
		FanSpeed:       Limits{0, 255},
		PrintSpeed:     Limits{10, 999},
		PrintFlow:      Limits{10, 999},
		MaxFeedrate:    [NumAxes]Limits{{1, 1000}, {1, 1000}, {1, 60}, {1, 200}},
		MaxAccel:       [NumAxes]Limits{{1, 5000}, {1, 5000}, {1, 500}, {1, 10000}},
		MaxJerk:        [NumAxes]Limits{{1, 40}, {1, 40}, {0.1, 2}, {1, 20}},
		StepsPerMM:     [NumAxes]Limits{{1, 999.9}, {1, 999.9}, {1, 999.9}, {1, 999.9}},
		Move:           [NumAxes]Limits{{0, 230}, {0, 230}, {0, 250}, {-500, 500}},
		ZOffset:        Limits{-5, 5},
		HomeOffset:     Limits{-50, 50},
		ProbeOffset:    Limits{-60, 60},
		ParkPos:        [3]Limits{{0, 230}, {0, 230}, {0, 250}},
		FilamentLength: Limits{0, 500},
		Brightness:     Limits{0, 255},
		ExtrudeMinTemp: 170,
		MachineName:    "Ender-3 V2",
		BedSize:        "230x230x250",
		Contact:        "github.com/dwinhmi",
	}
}
