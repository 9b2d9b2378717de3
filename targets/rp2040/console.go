//go:build rp2040

package main

import (
	"dwinhmi/session"
)

// serviceConsole feeds G-code from USB to the simulated printer and sends
// its replies back
func serviceConsole(sess *session.Session) {
	for USBAvailable() > 0 {
		data, err := USBRead()
		if err != nil {
			break
		}
		if err := sess.Printer.ProcessByte(data); err != nil {
			sess.Printer.SendResponse("Error: " + err.Error() + "\n")
		}
	}

	output := sess.Output()
	if len(output) > 0 {
		USBWriteBytes(output)
	}
}
