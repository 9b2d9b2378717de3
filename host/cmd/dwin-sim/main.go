//go:build !tinygo && cgo

package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dwinhmi/config"
	"dwinhmi/encoder"
	"dwinhmi/hmi"
	"dwinhmi/panel"
	"dwinhmi/session"
	mconfig "dwinhmi/standalone/config"
	"dwinhmi/storage"
)

var (
	configPath = flag.String("config", "", "HMI config file (JSON, TOML or YAML)")
	scale      = flag.Int("scale", 2, "Window scale")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	hmiCfg, err := cfg.HMI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	machine := mconfig.DefaultCartesianConfig()
	if cfg.Machine != "" {
		data, err := os.ReadFile(cfg.Machine)
		if err == nil {
			machine, err = mconfig.LoadConfig(data)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *verbose {
		hmi.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		hmi.SetDebugEnabled(true)
	}

	canvas := panel.NewCanvas(hmi.ScreenWidth, hmi.ScreenHeight)
	g := &simGame{
		canvas: canvas,
		input:  encoder.NewQueue(16),
		start:  time.Now(),
		media:  true,
	}
	g.sess, err = session.New(session.Options{
		HMI:     hmiCfg,
		Machine: machine,
		Display: panel.NewFramebuffer(canvas),
		Input:   g.input,
		Store:   &storage.File{Path: cfg.Settings.Path},
	}, g.now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("DWIN E3V2 simulator")
	ebiten.SetWindowSize(hmi.ScreenWidth*(*scale), hmi.ScreenHeight*(*scale))
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type simGame struct {
	sess   *session.Session
	canvas *panel.Canvas
	input  *encoder.Queue
	start  time.Time
	media  bool

	img    *image.RGBA
	fbImg  *ebiten.Image
	frames uint32
}

func (g *simGame) now() uint32 { return uint32(time.Since(g.start).Milliseconds()) }

var keyInputs = []struct {
	key ebiten.Key
	in  hmi.Input
}{
	{ebiten.KeyArrowRight, hmi.InputRotateRight},
	{ebiten.KeyArrowDown, hmi.InputRotateRight},
	{ebiten.KeyArrowLeft, hmi.InputRotateLeft},
	{ebiten.KeyArrowUp, hmi.InputRotateLeft},
	{ebiten.KeyEnter, hmi.InputClick},
	{ebiten.KeySpace, hmi.InputClick},
	{ebiten.KeyEscape, hmi.InputLongPress},
	{ebiten.KeyBackspace, hmi.InputLongPress},
}

func (g *simGame) poll() {
	for _, k := range keyInputs {
		if inpututil.IsKeyJustPressed(k.key) {
			g.input.Push(k.in)
		}
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		g.input.Push(hmi.InputRotateLeft)
	} else if dy < 0 {
		g.input.Push(hmi.InputRotateRight)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.input.Push(hmi.InputClick)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.input.Push(hmi.InputLongPress)
	}

	p := g.sess.Printer
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		p.TriggerRunout(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		p.EmergencyStop()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.media = !g.media
		p.SetMedia(g.media)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		p.TemperatureFault(true)
	}
}

func (g *simGame) Update() error {
	g.poll()
	if err := g.sess.Tick(g.now()); err != nil {
		return err
	}
	if out := g.sess.Output(); len(out) > 0 && *verbose {
		fmt.Print(string(out))
	}
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	w, h := g.canvas.Size()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
		g.fbImg = ebiten.NewImage(int(w), int(h))
	}
	if g.frames != g.canvas.Frames {
		g.frames = g.canvas.Frames
		g.canvas.RGBA(g.img)
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *simGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.canvas.Size()
	return int(w), int(h)
}
