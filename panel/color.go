package panel

import "image/color"

// RGBA expands an RGB565 color
func RGBA(c uint16) color.RGBA {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return color.RGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 0xFF}
}

// RGB565 packs a color
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
