package panel

import (
	"image"
	"image/color"
)

// Canvas is an in-memory RGB565 display. It satisfies drivers.Displayer so a
// Framebuffer can draw on it, and exposes the pixels for a desktop window
// or a test.
type Canvas struct {
	w, h       int16
	pix        []uint16
	brightness uint8
	Frames     uint32
}

// NewCanvas creates a black canvas
func NewCanvas(w, h int16) *Canvas {
	return &Canvas{w: w, h: h, pix: make([]uint16, int(w)*int(h)), brightness: 0xFF}
}

func (c *Canvas) Size() (x, y int16) { return c.w, c.h }

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.pix[int(y)*int(c.w)+int(x)] = RGB565(col)
}

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, c.w), min(y+height, c.h)
	v := RGB565(col)
	for j := y0; j < y1; j++ {
		row := c.pix[int(j)*int(c.w):]
		for i := x0; i < x1; i++ {
			row[i] = v
		}
	}
	return nil
}

// Display counts presented frames
func (c *Canvas) Display() error {
	c.Frames++
	return nil
}

func (c *Canvas) SetBrightness(level uint8) { c.brightness = level }

// At returns the RGB565 pixel at (x, y)
func (c *Canvas) At(x, y int16) uint16 {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.pix[int(y)*int(c.w)+int(x)]
}

// RGBA renders the canvas at the current backlight level into dst, which
// must be w x h
func (c *Canvas) RGBA(dst *image.RGBA) {
	for i, v := range c.pix {
		col := RGBA(v)
		o := i * 4
		dst.Pix[o] = uint8(uint16(col.R) * uint16(c.brightness) / 0xFF)
		dst.Pix[o+1] = uint8(uint16(col.G) * uint16(c.brightness) / 0xFF)
		dst.Pix[o+2] = uint8(uint16(col.B) * uint16(c.brightness) / 0xFF)
		dst.Pix[o+3] = 0xFF
	}
}

// Image returns a new image of the canvas
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(c.w), int(c.h)))
	c.RGBA(img)
	return img
}
