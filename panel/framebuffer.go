package panel

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"

	"dwinhmi/hmi"
)

type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

type dimmer interface {
	SetBrightness(level uint8)
}

// Framebuffer renders the DWIN primitives onto any pixel display. Icons are
// drawn as framed tiles since the icon artwork lives on the DWIN's flash.
type Framebuffer struct {
	dst        drivers.Displayer
	fonts      [6]tinyfont.Fonter
	brightness uint8
}

// NewFramebuffer creates a renderer drawing on dst
func NewFramebuffer(dst drivers.Displayer) *Framebuffer {
	return &Framebuffer{
		dst: dst,
		fonts: [6]tinyfont.Fonter{
			&proggy.TinySZ8pt7b, &proggy.TinySZ8pt7b,
			&freemono.Regular9pt7b, &freemono.Regular9pt7b,
			&freemono.Regular12pt7b, &freemono.Regular12pt7b,
		},
		brightness: 0xFF,
	}
}

// Brightness returns the last level set
func (f *Framebuffer) Brightness() uint8 { return f.brightness }

func (f *Framebuffer) font(size hmi.FontSize) tinyfont.Fonter {
	if int(size) >= len(f.fonts) {
		return f.fonts[len(f.fonts)-1]
	}
	return f.fonts[size]
}

func (f *Framebuffer) Clear(c uint16) {
	w, h := f.dst.Size()
	f.FillRect(0, 0, w, h, c)
}

func (f *Framebuffer) FillRect(x, y, w, h int16, c uint16) {
	if w <= 0 || h <= 0 {
		return
	}
	rgba := RGBA(c)
	if rf, ok := f.dst.(rectFiller); ok {
		_ = rf.FillRectangle(x, y, w, h, rgba)
		return
	}
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			f.dst.SetPixel(i, j, rgba)
		}
	}
}

// DrawLine uses Bresenham's algorithm
func (f *Framebuffer) DrawLine(x0, y0, x1, y1 int16, c uint16) {
	rgba := RGBA(c)
	dx, sx := abs16(x1-x0), int16(1)
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -abs16(y1-y0), int16(1)
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		f.dst.SetPixel(x0, y0, rgba)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

// DrawString fills the glyph cells with bg like the panel does, then draws
// the text with its top edge at y
func (f *Framebuffer) DrawString(size hmi.FontSize, fg, bg uint16, x, y int16, text string) {
	if text == "" {
		return
	}
	font := f.font(size)
	w, _ := tinyfont.LineWidth(font, text)
	cell := int16(len(text)) * size.Width()
	if int16(w) > cell {
		cell = int16(w)
	}
	f.FillRect(x, y, cell, size.Height(), bg)
	tinyfont.WriteLine(f.dst, font, x, y+size.Height()-size.Height()/4, text, RGBA(fg))
}

// DrawFloat right-aligns the value in a field of 1+iNum+1+fNum glyphs
func (f *Framebuffer) DrawFloat(size hmi.FontSize, fg, bg uint16, iNum, fNum uint8, x, y int16, value float64) {
	text := hmi.FormatFixed(value, fNum)
	width := 1 + int(iNum)
	if fNum > 0 {
		width += 1 + int(fNum)
	}
	for len(text) < width {
		text = " " + text
	}
	f.DrawString(size, fg, bg, x, y, text)
}

const iconSize = 20

// DrawIcon draws a tile whose shade encodes the picture number
func (f *Framebuffer) DrawIcon(lib, icon uint8, x, y int16) {
	shade := uint16(icon) * 0x0841
	f.FillRect(x, y, iconSize, iconSize, shade|0x2104)
	edge := uint16(0xFFFF)
	f.DrawLine(x, y, x+iconSize-1, y, edge)
	f.DrawLine(x, y+iconSize-1, x+iconSize-1, y+iconSize-1, edge)
	f.DrawLine(x, y, x, y+iconSize-1, edge)
	f.DrawLine(x+iconSize-1, y, x+iconSize-1, y+iconSize-1, edge)
}

func (f *Framebuffer) SetBrightness(level uint8) {
	f.brightness = level
	if d, ok := f.dst.(dimmer); ok {
		d.SetBrightness(level)
	}
}

// Update pushes the frame to the display
func (f *Framebuffer) Update() error {
	return f.dst.Display()
}
