// Package panel provides hmi.Display implementations: the DWIN serial panel
// and a pixel framebuffer renderer.
package panel

import (
	"io"

	"dwinhmi/hmi"
	"dwinhmi/protocol"
)

// largest single frame the renderer emits: a string frame with a full payload
const maxFrame = 2 + 9 + protocol.FrameTextMax + 4

// DWIN draws on a DWIN T5 panel by encoding frames onto a serial link.
// Frames are batched in a scratch buffer and written when it fills or on
// Update. The first write error is kept and returned by Update.
type DWIN struct {
	w   io.Writer
	out protocol.ScratchOutput
	err error

	Frames  uint32
	Flushes uint32
}

// NewDWIN creates a panel driver writing to w
func NewDWIN(w io.Writer) *DWIN {
	return &DWIN{w: w}
}

// Handshake sends the handshake frame. The panel answers "OK"; see
// protocol.IsHandshakeReply.
func (d *DWIN) Handshake() error {
	d.reserve()
	protocol.Handshake(&d.out)
	d.Frames++
	return d.Flush()
}

func (d *DWIN) reserve() {
	if d.out.Free() < maxFrame {
		d.flush()
	}
}

func (d *DWIN) flush() {
	data := d.out.Result()
	if len(data) == 0 {
		return
	}
	if d.err == nil {
		if _, err := d.w.Write(data); err != nil {
			d.err = err
		}
	}
	d.out.Reset()
	d.Flushes++
}

// Flush writes any buffered frames and returns the pending error
func (d *DWIN) Flush() error {
	d.flush()
	err := d.err
	d.err = nil
	return err
}

func coord(v int16) uint16 {
	if v < 0 {
		return 0
	}
	return uint16(v)
}

func (d *DWIN) Clear(color uint16) {
	d.reserve()
	protocol.ClearScreen(&d.out, color)
	d.Frames++
}

func (d *DWIN) FillRect(x, y, w, h int16, color uint16) {
	if w <= 0 || h <= 0 {
		return
	}
	d.reserve()
	protocol.DrawRectangle(&d.out, protocol.RectFill, color, coord(x), coord(y), coord(x+w-1), coord(y+h-1))
	d.Frames++
}

func (d *DWIN) DrawLine(x0, y0, x1, y1 int16, color uint16) {
	d.reserve()
	protocol.DrawLine(&d.out, color, coord(x0), coord(y0), coord(x1), coord(y1))
	d.Frames++
}

func (d *DWIN) DrawString(size hmi.FontSize, fg, bg uint16, x, y int16, text string) {
	d.reserve()
	protocol.DrawString(&d.out, false, true, uint8(size), fg, bg, coord(x), coord(y), text)
	d.Frames++
}

// DrawFloat draws the sign as text and the magnitude as a value frame, the
// panel having no signed value mode
func (d *DWIN) DrawFloat(size hmi.FontSize, fg, bg uint16, iNum, fNum uint8, x, y int16, value float64) {
	sign := " "
	if value < 0 {
		sign = "-"
		value = -value
	}
	d.DrawString(size, fg, bg, x, y, sign)
	d.reserve()
	protocol.DrawValue(&d.out, true, false, 0, uint8(size), fg, bg, iNum, fNum, coord(x+size.Width()), coord(y), scaled(value, fNum))
	d.Frames++
}

// scaled turns a value into the panel's implied-decimal integer
func scaled(v float64, fNum uint8) int32 {
	for i := uint8(0); i < fNum; i++ {
		v *= 10
	}
	if v < 0 {
		return int32(v - 0.5)
	}
	return int32(v + 0.5)
}

func (d *DWIN) DrawIcon(lib, icon uint8, x, y int16) {
	d.reserve()
	protocol.DrawIcon(&d.out, lib, icon, coord(x), coord(y))
	d.Frames++
}

func (d *DWIN) SetBrightness(level uint8) {
	d.reserve()
	protocol.SetBacklight(&d.out, level)
	d.Frames++
}

// Update refreshes the panel and writes all buffered frames
func (d *DWIN) Update() error {
	d.reserve()
	protocol.UpdateLCD(&d.out)
	d.Frames++
	return d.Flush()
}
