//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/hex"
	"syscall/js"

	"dwinhmi/hmi"
	"dwinhmi/protocol"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("dwinWasm", js.ValueOf(map[string]interface{}{
		"crc16":          js.FuncOf(crc16Wrapper),
		"handshake":      js.FuncOf(handshakeWrapper),
		"clear":          js.FuncOf(clearWrapper),
		"rectangle":      js.FuncOf(rectangleWrapper),
		"string":         js.FuncOf(stringWrapper),
		"value":          js.FuncOf(valueWrapper),
		"icon":           js.FuncOf(iconWrapper),
		"backlight":      js.FuncOf(backlightWrapper),
		"update":         js.FuncOf(updateWrapper),
		"parseFrames":    js.FuncOf(parseFramesWrapper),
		"decodeSettings": js.FuncOf(decodeSettingsWrapper),
		"version":        protocol.Version,
	}))

	// Keep the program running
	select {}
}

// encode runs one frame encoder and returns the frame as hex
func encode(fn func(output protocol.OutputBuffer)) js.Value {
	output := protocol.NewScratchOutput()
	fn(output)
	return js.ValueOf(hex.EncodeToString(output.Result()))
}

func intArg(args []js.Value, i int) int {
	if i >= len(args) {
		return 0
	}
	return args[i].Int()
}

// crc16Wrapper calculates CRC16 checksum
// Args: hexString (string)
// Returns: number (uint16)
func crc16Wrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}

	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf(0)
	}

	crc := protocol.CRC16(data)
	return js.ValueOf(int(crc))
}

func handshakeWrapper(this js.Value, args []js.Value) interface{} {
	return encode(protocol.Handshake)
}

// clearWrapper Args: color (RGB565)
func clearWrapper(this js.Value, args []js.Value) interface{} {
	return encode(func(output protocol.OutputBuffer) {
		protocol.ClearScreen(output, uint16(intArg(args, 0)))
	})
}

// rectangleWrapper Args: mode, color, xStart, yStart, xEnd, yEnd
func rectangleWrapper(this js.Value, args []js.Value) interface{} {
	return encode(func(output protocol.OutputBuffer) {
		protocol.DrawRectangle(output, uint8(intArg(args, 0)), uint16(intArg(args, 1)),
			uint16(intArg(args, 2)), uint16(intArg(args, 3)), uint16(intArg(args, 4)), uint16(intArg(args, 5)))
	})
}

// stringWrapper Args: size, color, bgColor, x, y, text
func stringWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 6 {
		return js.ValueOf("error: missing arguments")
	}
	return encode(func(output protocol.OutputBuffer) {
		protocol.DrawString(output, false, true, uint8(intArg(args, 0)), uint16(intArg(args, 1)),
			uint16(intArg(args, 2)), uint16(intArg(args, 3)), uint16(intArg(args, 4)), args[5].String())
	})
}

// valueWrapper Args: size, color, bgColor, iNum, fNum, x, y, value
// value is already scaled by 10^fNum
func valueWrapper(this js.Value, args []js.Value) interface{} {
	return encode(func(output protocol.OutputBuffer) {
		protocol.DrawValue(output, true, false, 0, uint8(intArg(args, 0)), uint16(intArg(args, 1)),
			uint16(intArg(args, 2)), uint8(intArg(args, 3)), uint8(intArg(args, 4)),
			uint16(intArg(args, 5)), uint16(intArg(args, 6)), int32(intArg(args, 7)))
	})
}

// iconWrapper Args: libID, picID, x, y
func iconWrapper(this js.Value, args []js.Value) interface{} {
	return encode(func(output protocol.OutputBuffer) {
		protocol.DrawIcon(output, uint8(intArg(args, 0)), uint8(intArg(args, 1)),
			uint16(intArg(args, 2)), uint16(intArg(args, 3)))
	})
}

// backlightWrapper Args: level (0-255)
func backlightWrapper(this js.Value, args []js.Value) interface{} {
	return encode(func(output protocol.OutputBuffer) {
		protocol.SetBacklight(output, uint8(intArg(args, 0)))
	})
}

func updateWrapper(this js.Value, args []js.Value) interface{} {
	return encode(protocol.UpdateLCD)
}

// parseFramesWrapper splits panel output into frames
// Args: hexString (string)
// Returns: {frames: [{cmd, payload}], consumed: number, discarded: number, error: string}
func parseFramesWrapper(this js.Value, args []js.Value) interface{} {
	result := make(map[string]interface{})
	if len(args) < 1 {
		result["error"] = "missing hex string argument"
		return js.ValueOf(result)
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		result["error"] = "invalid hex string: " + err.Error()
		return js.ValueOf(result)
	}

	frames := []interface{}{}
	rx := protocol.NewReceiver(func(cmd byte, payload []byte) {
		frames = append(frames, map[string]interface{}{
			"cmd":     int(cmd),
			"payload": hex.EncodeToString(payload),
		})
	})
	input := protocol.NewSliceInputBuffer(data)
	rx.Receive(input)

	result["frames"] = frames
	result["consumed"] = len(data) - input.Available()
	result["discarded"] = int(rx.Discarded)
	return js.ValueOf(result)
}

// decodeSettingsWrapper decodes a stored preference blob
// Args: hexString (string)
// Returns: {brightness, park: [x, y, z], colors: [RGB565...], error}
func decodeSettingsWrapper(this js.Value, args []js.Value) interface{} {
	result := make(map[string]interface{})
	if len(args) < 1 {
		result["error"] = "missing hex string argument"
		return js.ValueOf(result)
	}
	data, err := hex.DecodeString(args[0].String())
	if err != nil {
		result["error"] = "invalid hex string: " + err.Error()
		return js.ValueOf(result)
	}

	var p hmi.Preferences
	if err := p.Decode(data); err != nil {
		result["error"] = err.Error()
		return js.ValueOf(result)
	}
	colors := make([]interface{}, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = int(c)
	}
	result["brightness"] = int(p.Brightness)
	result["park"] = []interface{}{float64(p.ParkPoint[0]), float64(p.ParkPoint[1]), float64(p.ParkPoint[2])}
	result["colors"] = colors
	return js.ValueOf(result)
}
