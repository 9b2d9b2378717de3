// Package session wires a controller to the simulated printer and its
// collaborators, and rebuilds both when the user reboots from the menu.
package session

import (
	"dwinhmi/hmi"
	"dwinhmi/standalone"
	"dwinhmi/standalone/config"
	"dwinhmi/standalone/model"
)

// RebootDelayMs keeps the reboot screen up before the rebuild
const RebootDelayMs = 1500

// Options are the parts a session is built from. Display is required.
type Options struct {
	HMI     hmi.Config           // zero value selects hmi.DefaultConfig
	Machine *model.MachineConfig // nil selects the default cartesian machine
	Display hmi.Display
	Input   hmi.InputSource
	Store   hmi.SettingsStore
	Buzzer  hmi.Buzzer
}

type Session struct {
	Printer    *standalone.Printer
	Controller *hmi.Controller
	Reboots    int

	opts     Options
	rebootAt uint32
	pending  bool
}

// New builds and starts a session at time nowMs
func New(opts Options, nowMs uint32) (*Session, error) {
	if opts.Machine == nil {
		opts.Machine = config.DefaultCartesianConfig()
	}
	if opts.HMI == (hmi.Config{}) {
		opts.HMI = hmi.DefaultConfig()
	}
	s := &Session{opts: opts}
	if err := s.boot(nowMs); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) boot(now uint32) error {
	p, err := standalone.NewPrinter(s.opts.Machine, nil)
	if err != nil {
		return err
	}
	c := hmi.New(s.opts.HMI, s.opts.Display, p)
	if s.opts.Input != nil {
		c.SetInputSource(s.opts.Input)
	}
	if s.opts.Store != nil {
		c.SetSettingsStore(s.opts.Store)
	}
	if s.opts.Buzzer != nil {
		c.SetBuzzer(s.opts.Buzzer)
	}
	p.SetBridge(c)
	if err := c.Init(now); err != nil {
		// defaults are in place
		hmi.DebugPrintln("[SESSION] " + err.Error())
	}
	p.Start()

	s.Printer = p
	s.Controller = c
	s.pending = false
	return nil
}

// Tick advances the printer, then the controller
func (s *Session) Tick(nowMs uint32) error {
	s.Printer.Update(nowMs)
	s.Controller.Poll(nowMs)

	if !s.Printer.RebootRequested() {
		return nil
	}
	if !s.pending {
		s.pending = true
		s.rebootAt = nowMs + RebootDelayMs
		return nil
	}
	if int32(nowMs-s.rebootAt) < 0 {
		return nil
	}
	s.Reboots++
	hmi.DebugPrintln("[SESSION] reboot")
	return s.boot(nowMs)
}

// Output drains the printer's G-code replies
func (s *Session) Output() []byte {
	return s.Printer.GetOutput()
}
