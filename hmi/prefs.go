package hmi

// Palette slots, in storage order
const (
	ColorBackground = iota
	ColorCursor
	ColorTitleBg
	ColorTitleTxt
	ColorText
	ColorSelected
	ColorSplitLine
	ColorHighlight
	ColorStatusBg
	ColorStatusTxt
	ColorPopupBg
	ColorPopupTxt
	ColorAlertBg
	ColorAlertTxt
	ColorPercentTxt
	ColorBarfill
	ColorIndicator
	ColorCoordinate
	NumColors
)

var colorNames = [NumColors]string{
	"Screen Background", "Cursor", "Title Background", "Title Text", "Text",
	"Selected", "Split Line", "Highlight", "Status Background", "Status Text",
	"Popup Background", "Popup Text", "Alert Background", "Alert Text",
	"Percent Text", "Bar Fill", "Indicator", "Coordinates",
}

var defaultColors = [NumColors]uint16{
	ColorBackground: 0x0841,
	ColorCursor:     0xEA60,
	ColorTitleBg:    0x1125,
	ColorTitleTxt:   0xFFFF,
	ColorText:       0xFFFF,
	ColorSelected:   0x33BB,
	ColorSplitLine:  0x3A6A,
	ColorHighlight:  0xFFFF,
	ColorStatusBg:   0x0294,
	ColorStatusTxt:  0xFFE0,
	ColorPopupBg:    0x31E8,
	ColorPopupTxt:   0xD6BA,
	ColorAlertBg:    0xF00F,
	ColorAlertTxt:   0xFFE0,
	ColorPercentTxt: 0xFE29,
	ColorBarfill:    0x10E4,
	ColorIndicator:  0xFFFF,
	ColorCoordinate: 0xFFFF,
}

// DefaultBrightness is the backlight level used until settings are restored
const DefaultBrightness = 127

// Preferences holds the persisted display settings
type Preferences struct {
	Brightness uint8
	ParkPoint  [3]float32 // X, Y, Z
	Colors     [NumColors]uint16
}

// DefaultPreferences returns the compiled-in preferences
func DefaultPreferences() Preferences {
	p := Preferences{
		Brightness: DefaultBrightness,
		ParkPoint:  [3]float32{10, 10, 20},
	}
	p.SetColorDefaults()
	return p
}

// SetColorDefaults restores the palette only
func (p *Preferences) SetColorDefaults() {
	p.Colors = defaultColors
}

// ColorName returns the menu label of a palette slot
func ColorName(i int) string {
	if i < 0 || i >= NumColors {
		return ""
	}
	return colorNames[i]
}

// RGB packs 5/6/5-bit channels into an RGB565 color
func RGB(r, g, b uint8) uint16 {
	return uint16(r&0x1F)<<11 | uint16(g&0x3F)<<5 | uint16(b&0x1F)
}

// SplitRGB unpacks an RGB565 color into its 5/6/5-bit channels
func SplitRGB(c uint16) (r, g, b uint8) {
	return uint8(c >> 11 & 0x1F), uint8(c >> 5 & 0x3F), uint8(c & 0x1F)
}
