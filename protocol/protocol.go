// Package protocol implements the DWIN serial panel frame protocol
package protocol

// Version represents the dwinhmi firmware version
const Version = "0.3.0"

// Frame layout constants
const (
	FrameHeader  = 0xAA // First byte of every frame in both directions
	FrameMax     = 512  // Scratch output capacity (several frames per flush)
	FrameTextMax = 64   // Longest string payload sent in one frame
	ResponseMax  = 32   // Longest response payload accepted from the panel
)

// FrameTail terminates every frame
var FrameTail = [4]byte{0xCC, 0x33, 0xC3, 0x3C}

// Command bytes
const (
	CmdHandshake = 0x00
	CmdClear     = 0x01
	CmdPoint     = 0x02
	CmdLine      = 0x03
	CmdRectangle = 0x05
	CmdAreaMove  = 0x09
	CmdString    = 0x11
	CmdValue     = 0x14
	CmdJPG       = 0x22
	CmdIcon      = 0x23
	CmdBacklight = 0x30
	CmdFrameDir  = 0x34
	CmdUpdate    = 0x3D
)

// Rectangle modes
const (
	RectFrame = 0
	RectFill  = 1
	RectXOR   = 2
)

// Flag bits for string and value frames
const (
	flagWidthAdjust = 0x80
	flagStringShow  = 0x40
	flagValueShow   = 0x80
	flagZeroFill    = 0x20
	flagZeroMode    = 0x10
)
