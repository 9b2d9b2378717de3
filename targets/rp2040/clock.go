//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// GetHardwareUptime reads the full 64-bit microsecond timer
func GetHardwareUptime() uint64 {
	// Must read high first, then low, then high again to detect rollover
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// NowMs is the millisecond clock the HMI and the printer run on. It wraps
// after 49 days; both sides compare times wrap-safely.
func NowMs() uint32 {
	return uint32(GetHardwareUptime() / 1000)
}
