// Package link manages the host's serial connection to a DWIN panel
package link

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"dwinhmi/host/serial"
	"dwinhmi/panel"
	"dwinhmi/protocol"
)

var (
	ErrNotConnected = errors.New("not connected to panel")
	ErrNoHandshake  = errors.New("panel did not answer handshake")
)

// Link owns the serial port: writes go through Panel, a reader goroutine
// splits the panel's replies into frames
type Link struct {
	// Panel draws onto the port
	Panel *panel.DWIN

	port serial.Port
	rx   *protocol.Receiver
	fifo *protocol.FifoBuffer

	handshake chan struct{}
	onFrame   func(cmd byte, payload []byte)

	mu     sync.Mutex
	closed bool
	done   chan struct{}

	Replies atomic.Uint32
}

// Connect opens the panel's serial port and starts reading
func Connect(cfg *serial.Config) (*Link, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	return New(port), nil
}

// New wraps an open port
func New(port serial.Port) *Link {
	l := &Link{
		Panel:     panel.NewDWIN(port),
		port:      port,
		fifo:      protocol.NewFifoBuffer(256),
		handshake: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	l.rx = protocol.NewReceiver(l.handleFrame)
	go l.readLoop()
	return l
}

// OnFrame registers a callback for frames other than handshake replies.
// It runs on the reader goroutine.
func (l *Link) OnFrame(fn func(cmd byte, payload []byte)) {
	l.mu.Lock()
	l.onFrame = fn
	l.mu.Unlock()
}

func (l *Link) handleFrame(cmd byte, payload []byte) {
	l.Replies.Add(1)
	if protocol.IsHandshakeReply(cmd, payload) {
		select {
		case l.handshake <- struct{}{}:
		default:
		}
		return
	}
	l.mu.Lock()
	fn := l.onFrame
	l.mu.Unlock()
	if fn != nil {
		fn(cmd, payload)
	}
}

func (l *Link) readLoop() {
	defer close(l.done)
	buf := make([]byte, 64)
	for {
		n, err := l.port.Read(buf)
		if n > 0 {
			l.fifo.Write(buf[:n])
			l.rx.Receive(l.fifo)
		}
		if err != nil {
			if l.isClosed() {
				return
			}
			if errors.Is(err, io.EOF) {
				// read timeout
				continue
			}
			return
		}
	}
}

// Handshake asks the panel to identify itself and waits for the reply.
// Panels drop the first frames after power-up, so it retries until
// timeout.
func (l *Link) Handshake(timeout time.Duration) error {
	if l.isClosed() {
		return ErrNotConnected
	}
	deadline := time.After(timeout)
	retry := time.NewTicker(200 * time.Millisecond)
	defer retry.Stop()
	for {
		if err := l.Panel.Handshake(); err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
		select {
		case <-l.handshake:
			return nil
		case <-retry.C:
		case <-deadline:
			return ErrNoHandshake
		case <-l.done:
			return ErrNotConnected
		}
	}
}

func (l *Link) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close closes the port and waits for the reader to stop
func (l *Link) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()
	err := l.port.Close()
	<-l.done
	return err
}
