package standalone

import "dwinhmi/standalone/model"

// snapshot is the part of the machine a settings store persists (M500)
type snapshot struct {
	axes         map[string]model.AxisConfig
	pid          map[string][3]float64
	presets      []model.Preset
	homeOffset   model.Position
	probeOffset  model.Position
	loadLength   float64
	unloadLength float64
	runout       bool
	mesh         []float64
}

func (p *Printer) snapshot() snapshot {
	s := snapshot{
		axes:         make(map[string]model.AxisConfig, len(p.config.Axes)),
		pid:          make(map[string][3]float64, len(p.config.Heaters)),
		presets:      append([]model.Preset(nil), p.config.Presets...),
		homeOffset:   p.config.HomeOffset,
		probeOffset:  p.config.ProbeOffset,
		loadLength:   p.config.LoadLength,
		unloadLength: p.config.UnloadLength,
		runout:       p.runout,
		mesh:         append([]float64(nil), p.mesh...),
	}
	for name, a := range p.config.Axes {
		s.axes[name] = a
	}
	for name, h := range p.config.Heaters {
		s.pid[name] = h.PID
	}
	return s
}

func (p *Printer) restore(s snapshot) {
	for name, a := range s.axes {
		p.config.Axes[name] = a
		if st := p.planner.Stepper(name); st != nil {
			st.SetStepsPerMM(a.StepsPerMM)
		}
	}
	for name, pid := range s.pid {
		if h, ok := p.config.Heaters[name]; ok {
			h.PID = pid
			p.config.Heaters[name] = h
		}
	}
	p.config.Presets = append(p.config.Presets[:0], s.presets...)
	p.config.HomeOffset = s.homeOffset
	p.config.ProbeOffset = s.probeOffset
	p.config.LoadLength = s.loadLength
	p.config.UnloadLength = s.unloadLength
	p.runout = s.runout
	copy(p.mesh, s.mesh)
}

// copyConfig deep-copies the maps and slices the printer mutates
func copyConfig(cfg *model.MachineConfig) *model.MachineConfig {
	c := *cfg
	c.Axes = make(map[string]model.AxisConfig, len(cfg.Axes))
	for k, v := range cfg.Axes {
		c.Axes[k] = v
	}
	c.Heaters = make(map[string]model.HeaterConfig, len(cfg.Heaters))
	for k, v := range cfg.Heaters {
		c.Heaters[k] = v
	}
	c.Presets = append([]model.Preset(nil), cfg.Presets...)
	c.Files = make(map[string]string, len(cfg.Files))
	for k, v := range cfg.Files {
		c.Files[k] = v
	}
	if c.MeshGrid < 1 {
		c.MeshGrid = 3
	}
	return &c
}
