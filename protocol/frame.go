package protocol

// EncodeFrame writes one complete frame: header, command, payload, tail
func EncodeFrame(output OutputBuffer, cmd byte, payload func(output OutputBuffer)) {
	output.Output([]byte{FrameHeader, cmd})
	if payload != nil {
		payload(output)
	}
	output.Output(FrameTail[:])
}

// FrameSize returns the encoded size of a frame carrying n payload bytes
func FrameSize(n int) int {
	return 2 + n + len(FrameTail)
}

// EncodeWord writes a big-endian 16-bit value
func EncodeWord(output OutputBuffer, v uint16) {
	output.Output([]byte{byte(v >> 8), byte(v)})
}

// EncodeLong writes a big-endian 32-bit value
func EncodeLong(output OutputBuffer, v uint32) {
	output.Output([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// Handshake asks the panel to answer with "OK"
func Handshake(output OutputBuffer) {
	EncodeFrame(output, CmdHandshake, nil)
}

// SetBacklight sets the panel backlight (0x00-0xFF)
func SetBacklight(output OutputBuffer, level uint8) {
	EncodeFrame(output, CmdBacklight, func(output OutputBuffer) {
		output.Output([]byte{level})
	})
}

// SetFrameDir sets the display rotation (0-3)
func SetFrameDir(output OutputBuffer, dir uint8) {
	EncodeFrame(output, CmdFrameDir, func(output OutputBuffer) {
		output.Output([]byte{0x5A, 0xA5, dir})
	})
}

// UpdateLCD latches everything drawn since the last update
func UpdateLCD(output OutputBuffer) {
	EncodeFrame(output, CmdUpdate, nil)
}

// ClearScreen fills the whole frame with color
func ClearScreen(output OutputBuffer, color uint16) {
	EncodeFrame(output, CmdClear, func(output OutputBuffer) {
		EncodeWord(output, color)
	})
}

// DrawPoint draws a width x height dot at (x, y)
func DrawPoint(output OutputBuffer, color uint16, width, height uint8, x, y uint16) {
	EncodeFrame(output, CmdPoint, func(output OutputBuffer) {
		EncodeWord(output, color)
		output.Output([]byte{width, height})
		EncodeWord(output, x)
		EncodeWord(output, y)
	})
}

// DrawLine draws a line between two points
func DrawLine(output OutputBuffer, color uint16, xStart, yStart, xEnd, yEnd uint16) {
	EncodeFrame(output, CmdLine, func(output OutputBuffer) {
		EncodeWord(output, color)
		EncodeWord(output, xStart)
		EncodeWord(output, yStart)
		EncodeWord(output, xEnd)
		EncodeWord(output, yEnd)
	})
}

// DrawRectangle draws a rectangle; mode is RectFrame, RectFill or RectXOR
func DrawRectangle(output OutputBuffer, mode uint8, color uint16, xStart, yStart, xEnd, yEnd uint16) {
	EncodeFrame(output, CmdRectangle, func(output OutputBuffer) {
		output.Output([]byte{mode})
		EncodeWord(output, color)
		EncodeWord(output, xStart)
		EncodeWord(output, yStart)
		EncodeWord(output, xEnd)
		EncodeWord(output, yEnd)
	})
}

// MoveArea shifts a rectangle by distance pixels, filling the gap with color.
// dir: 0 left, 1 right, 2 up, 3 down. mode 0 circular, 1 translational.
func MoveArea(output OutputBuffer, mode, dir uint8, distance, color uint16, xStart, yStart, xEnd, yEnd uint16) {
	EncodeFrame(output, CmdAreaMove, func(output OutputBuffer) {
		output.Output([]byte{(mode << 7) | dir})
		EncodeWord(output, distance)
		EncodeWord(output, color)
		EncodeWord(output, xStart)
		EncodeWord(output, yStart)
		EncodeWord(output, xEnd)
		EncodeWord(output, yEnd)
	})
}

// DrawString draws text. Text longer than FrameTextMax is truncated.
func DrawString(output OutputBuffer, widthAdjust, show bool, size uint8, color, bgColor uint16, x, y uint16, text string) {
	if len(text) > FrameTextMax {
		text = text[:FrameTextMax]
	}
	flags := size & 0x0F
	if widthAdjust {
		flags |= flagWidthAdjust
	}
	if show {
		flags |= flagStringShow
	}
	EncodeFrame(output, CmdString, func(output OutputBuffer) {
		output.Output([]byte{flags})
		EncodeWord(output, color)
		EncodeWord(output, bgColor)
		EncodeWord(output, x)
		EncodeWord(output, y)
		output.Output([]byte(text))
	})
}

// DrawValue draws a fixed-point number. value carries fNum implied decimals
// (123 with fNum=1 is shown as 12.3). iNum is the integer digit count.
func DrawValue(output OutputBuffer, show, zeroFill bool, zeroMode, size uint8, color, bgColor uint16, iNum, fNum uint8, x, y uint16, value int32) {
	flags := size & 0x0F
	if show {
		flags |= flagValueShow
	}
	if zeroFill {
		flags |= flagZeroFill
	}
	if zeroMode != 0 {
		flags |= flagZeroMode
	}
	EncodeFrame(output, CmdValue, func(output OutputBuffer) {
		output.Output([]byte{flags})
		EncodeWord(output, color)
		EncodeWord(output, bgColor)
		output.Output([]byte{iNum, fNum})
		EncodeWord(output, x)
		EncodeWord(output, y)
		EncodeLong(output, uint32(value))
	})
}

// DrawIcon shows picture picID from icon library libID at (x, y)
func DrawIcon(output OutputBuffer, libID, picID uint8, x, y uint16) {
	EncodeFrame(output, CmdIcon, func(output OutputBuffer) {
		EncodeWord(output, x)
		EncodeWord(output, y)
		output.Output([]byte{0x80 | libID, picID})
	})
}

// ShowJPG shows a full-screen JPG stored on the panel
func ShowJPG(output OutputBuffer, id uint8) {
	EncodeFrame(output, CmdJPG, func(output OutputBuffer) {
		output.Output([]byte{0x00, id})
	})
}
