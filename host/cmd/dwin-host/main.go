package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"dwinhmi/config"
	"dwinhmi/encoder"
	"dwinhmi/hmi"
	"dwinhmi/host/link"
	"dwinhmi/host/serial"
	"dwinhmi/session"
	mconfig "dwinhmi/standalone/config"
	"dwinhmi/standalone/model"
	"dwinhmi/storage"
)

var (
	configPath = flag.String("config", "", "HMI config file (JSON, TOML or YAML)")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	fmt.Println("DWIN Host - E3V2 panel driver with a simulated printer")
	fmt.Println("======================================================")

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *device != "" {
		cfg.Panel.Port = *device
	}
	if *baud != 0 {
		cfg.Panel.Baud = *baud
	}
	hmiCfg, err := cfg.HMI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	machine, err := loadMachine(cfg.Machine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		hmi.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		hmi.SetDebugEnabled(true)
		hmi.InitAsyncDebug()
	}

	fmt.Printf("Connecting to panel on %s...\n", cfg.Panel.Port)
	serialCfg := serial.DefaultConfig(cfg.Panel.Port)
	serialCfg.Baud = cfg.Panel.Baud
	panelLink, err := link.Connect(serialCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer panelLink.Close()

	if err := panelLink.Handshake(3 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Panel answered handshake")

	input := encoder.NewQueue(16)
	start := time.Now()
	now := func() uint32 { return uint32(time.Since(start).Milliseconds()) }

	sess, err := session.New(session.Options{
		HMI:     hmiCfg,
		Machine: machine,
		Display: panelLink.Panel,
		Input:   input,
		Store:   &storage.File{Path: cfg.Settings.Path},
	}, now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lines := make(chan string)
	go readLines(lines)

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !handleLine(sess, input, line) {
				fmt.Println("Goodbye!")
				return
			}
		case <-ticker.C:
			if err := sess.Tick(now()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if out := sess.Output(); len(out) > 0 {
				fmt.Print(string(out))
			}
		}
	}
}

func loadMachine(path string) (*model.MachineConfig, error) {
	if path == "" {
		return mconfig.DefaultCartesianConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("machine config: %w", err)
	}
	return mconfig.LoadConfig(data)
}

func readLines(lines chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
	close(lines)
}

// handleLine runs one console command and reports whether to keep going
func handleLine(sess *session.Session, input *encoder.Queue, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])

	if in, ok := encoder.Parse(cmd); ok {
		n := 1
		if len(parts) > 1 {
			fmt.Sscanf(parts[1], "%d", &n)
		}
		for i := 0; i < n; i++ {
			input.Push(in)
		}
		return true
	}

	p := sess.Printer
	switch cmd {
	case "quit", "exit", "q":
		return false

	case "help", "?":
		printHelp()

	case "g", "gcode":
		if len(parts) < 2 {
			fmt.Println("usage: g <gcode line>")
			break
		}
		if err := p.ProcessLine(strings.Join(parts[1:], " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case "runout":
		p.TriggerRunout(0)

	case "kill":
		p.EmergencyStop()

	case "media":
		p.SetMedia(len(parts) < 2 || parts[1] != "off")

	case "fault":
		p.TemperatureFault(len(parts) > 1 && parts[1] == "high")

	case "state":
		c := sess.Controller
		st := p.Status()
		fmt.Printf("screen %v (saved %v), hotend %.1f/%.1f, bed %.1f/%.1f, reboots %d\n",
			c.Current(), c.Saved(), st.HotendTemp, st.HotendTarget, st.BedTemp, st.BedTarget, sess.Reboots)
		fmt.Printf("stats %+v\n", c.Stats)

	default:
		fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmd)
	}
	return true
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  r|l [n]        - Rotate the knob right/left n detents")
	fmt.Println("  c              - Click")
	fmt.Println("  b              - Long press (back)")
	fmt.Println("  g <line>       - Send a G-code line to the printer")
	fmt.Println("  runout         - Trip the filament runout sensor")
	fmt.Println("  kill           - Emergency stop")
	fmt.Println("  media on|off   - Insert or remove the SD card")
	fmt.Println("  fault high|low - Report a thermal fault")
	fmt.Println("  state          - Show screen and temperatures")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}
