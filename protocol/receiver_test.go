package protocol

import "testing"

type capturedFrame struct {
	cmd     byte
	payload string
}

func collect(frames *[]capturedFrame) ResponseHandler {
	return func(cmd byte, payload []byte) {
		*frames = append(*frames, capturedFrame{cmd, string(payload)})
	}
}

var handshakeReply = []byte{0xAA, 0x00, 'O', 'K', 0xCC, 0x33, 0xC3, 0x3C}

func TestReceiverHandshake(t *testing.T) {
	var frames []capturedFrame
	r := NewReceiver(collect(&frames))

	in := NewSliceInputBuffer(handshakeReply)
	r.Receive(in)

	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(frames))
	}
	if !IsHandshakeReply(frames[0].cmd, []byte(frames[0].payload)) {
		t.Errorf("Expected handshake reply, got %+v", frames[0])
	}
	if in.Available() != 0 {
		t.Errorf("Expected input fully consumed, %d left", in.Available())
	}
}

func TestReceiverSkipsGarbage(t *testing.T) {
	var frames []capturedFrame
	r := NewReceiver(collect(&frames))

	data := append([]byte{0x01, 0x02, 0x03}, handshakeReply...)
	r.Receive(NewSliceInputBuffer(data))

	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(frames))
	}
	if r.Discarded != 3 {
		t.Errorf("Expected 3 discarded bytes, got %d", r.Discarded)
	}
}

func TestReceiverSplitFrame(t *testing.T) {
	var frames []capturedFrame
	r := NewReceiver(collect(&frames))
	fifo := NewFifoBuffer(64)

	fifo.Write(handshakeReply[:5])
	r.Receive(fifo)
	if len(frames) != 0 {
		t.Fatalf("Partial frame should not dispatch")
	}
	if fifo.Available() != 5 {
		t.Fatalf("Partial frame should stay buffered, have %d", fifo.Available())
	}

	fifo.Write(handshakeReply[5:])
	r.Receive(fifo)
	if len(frames) != 1 || frames[0].payload != "OK" {
		t.Fatalf("Expected OK frame after completion, got %+v", frames)
	}
}

func TestReceiverDropsHeaderWithoutTail(t *testing.T) {
	var frames []capturedFrame
	r := NewReceiver(collect(&frames))

	data := []byte{0xAA, 0x07}
	data = append(data, make([]byte, ResponseMax+8)...)
	data = append(data, handshakeReply...)
	r.Receive(NewSliceInputBuffer(data))

	if len(frames) != 1 || frames[0].cmd != CmdHandshake {
		t.Fatalf("Expected only the handshake frame, got %+v", frames)
	}
}
