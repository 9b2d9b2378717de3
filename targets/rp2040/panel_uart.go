//go:build rp2040

package main

import (
	"context"
	"errors"
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"dwinhmi/panel"
	"dwinhmi/protocol"
)

var errNoHandshake = errors.New("panel did not answer handshake")

// configurePanel opens UART0 to the display
func configurePanel(baud uint32) (*uartx.UART, *panel.DWIN, error) {
	hw := uartx.UART0
	err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(pinPanelTX),
		RX:       machine.Pin(pinPanelRX),
	})
	if err != nil {
		return nil, nil, err
	}
	return hw, panel.NewDWIN(hw), nil
}

// waitHandshake repeats the handshake until the panel answers or timeout
// passes. The panel boots slower than the MCU.
func waitHandshake(hw *uartx.UART, d *panel.DWIN, timeout time.Duration) error {
	ok := false
	rx := protocol.NewReceiver(func(cmd byte, payload []byte) {
		if protocol.IsHandshakeReply(cmd, payload) {
			ok = true
		}
	})
	fifo := protocol.NewFifoBuffer(64)
	buf := make([]byte, 32)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err := d.Handshake(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		for !ok {
			n, err := hw.RecvSomeContext(ctx, buf)
			if n > 0 {
				fifo.Write(buf[:n])
				rx.Receive(fifo)
			}
			if err != nil {
				break
			}
		}
		cancel()
		if ok {
			return nil
		}
	}
	return errNoHandshake
}
