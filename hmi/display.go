package hmi

// FontSize selects a panel font. Glyphs are (6+2n) x (12+4n) pixels.
type FontSize uint8

const (
	Font6x12  FontSize = 0
	Font8x16  FontSize = 1
	Font10x20 FontSize = 2
	Font12x24 FontSize = 3
	Font14x28 FontSize = 4
	Font16x32 FontSize = 5
)

// Width returns the glyph width in pixels
func (f FontSize) Width() int16 {
	return 6 + 2*int16(f)
}

// Height returns the glyph height in pixels
func (f FontSize) Height() int16 {
	return 12 + 4*int16(f)
}

// Icon library and picture numbers on the panel's flash
const (
	IconLib = 9

	IconLogo         = 0
	IconPrint        = 1
	IconPrepare      = 3
	IconControl      = 5
	IconInfo         = 7
	IconLeveling     = 9
	IconHotend       = 13
	IconBed          = 16
	IconFan          = 19
	IconSpeed        = 21
	IconZOffset      = 23
	IconStep         = 24
	IconFlow         = 25
	IconBack         = 26
	IconHoming       = 27
	IconMove         = 28
	IconTemperature  = 29
	IconMotion       = 30
	IconAdvSet       = 31
	IconPause        = 32
	IconResume       = 33
	IconStop         = 34
	IconTune         = 35
	IconFile         = 36
	IconPreheat      = 37
	IconCool         = 38
	IconWriteEEPROM  = 39
	IconReadEEPROM   = 40
	IconResetEEPROM  = 41
	IconReboot       = 42
	IconLanguage     = 43
	IconFilament     = 44
	IconBrightness   = 45
	IconPalette      = 46
	IconPark         = 47
	IconProbe        = 48
	IconRunout       = 49
	IconPID          = 50
	IconLock         = 51
	IconWarning      = 52
	IconConfirm      = 53
	IconCancel       = 54
	IconContinue     = 55
	IconPrinterHalt  = 56
	IconBLTouch      = 57
	IconMeshNext     = 58
	IconHomeOffset   = 59
	IconMaxSpeed     = 60
	IconMaxAccel     = 61
	IconMaxJerk      = 62
	IconAxis         = 63
	IconPrintTime    = 64
	IconRemainTime   = 65
	IconTempTooHigh  = 66
	IconTempTooLow   = 67
	IconSDCard       = 68
	IconBoxPointUp   = 69
	IconSetHomeFirst = 70
)

// Display is the panel the renderer draws on. Coordinates are pixels with
// the origin at the top left; colors are RGB565.
type Display interface {
	Clear(color uint16)
	FillRect(x, y, w, h int16, color uint16)
	DrawLine(x0, y0, x1, y1 int16, color uint16)
	DrawString(size FontSize, fg, bg uint16, x, y int16, text string)

	// DrawFloat draws a signed fixed-point number with iNum integer and
	// fNum fraction digits
	DrawFloat(size FontSize, fg, bg uint16, iNum, fNum uint8, x, y int16, value float64)

	DrawIcon(lib, icon uint8, x, y int16)
	SetBrightness(level uint8)

	// Update pushes everything drawn so far to the screen
	Update() error
}

// Input is one discrete event from the encoder
type Input uint8

const (
	InputNone Input = iota
	InputRotateLeft
	InputRotateRight
	InputClick
	InputLongPress
)

func (in Input) String() string {
	switch in {
	case InputRotateLeft:
		return "left"
	case InputRotateRight:
		return "right"
	case InputClick:
		return "click"
	case InputLongPress:
		return "long"
	}
	return "none"
}

// InputSource yields pending encoder events, InputNone when idle
type InputSource interface {
	ReadInput(nowMs uint32) Input
}

// Buzzer plays a tone. Implementations must not block.
type Buzzer interface {
	Tone(freqHz, durationMs uint16)
}

// SettingsStore persists the settings blob
type SettingsStore interface {
	ReadSettings(buf []byte) error
	WriteSettings(buf []byte) error
}
