package protocol

import "testing"

func TestSliceInputBuffer(t *testing.T) {
	buf := NewSliceInputBuffer([]byte{1, 2, 3, 4, 5})

	if buf.Available() != 5 {
		t.Errorf("Expected 5 bytes available, got %d", buf.Available())
	}

	buf.Pop(2)
	if buf.Available() != 3 || buf.Data()[0] != 3 {
		t.Errorf("After popping 2, expected [3 4 5], got %v", buf.Data())
	}

	buf.Pop(10)
	if buf.Available() != 0 {
		t.Errorf("Pop past end should empty the buffer, got %d", buf.Available())
	}
}

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output([]byte{1, 2, 3})
	scratch.Output([]byte{4, 5})

	if scratch.CurPosition() != 5 {
		t.Errorf("Expected position 5, got %d", scratch.CurPosition())
	}
	if scratch.Free() != FrameMax-5 {
		t.Errorf("Expected %d free, got %d", FrameMax-5, scratch.Free())
	}

	since := scratch.DataSince(2)
	if len(since) != 3 || since[0] != 3 {
		t.Errorf("DataSince(2) failed: expected [3 4 5], got %v", since)
	}

	scratch.Reset()
	if scratch.CurPosition() != 0 {
		t.Errorf("After reset, expected position 0, got %d", scratch.CurPosition())
	}
}

func TestScratchOutputOverflow(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, FrameMax-1))
	scratch.Output([]byte{1, 2})

	if scratch.CurPosition() != FrameMax {
		t.Errorf("Expected position %d, got %d", FrameMax, scratch.CurPosition())
	}
	if scratch.Overflows != 1 {
		t.Errorf("Expected 1 overflow, got %d", scratch.Overflows)
	}
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)

	if fifo.Available() != 0 {
		t.Errorf("Empty FIFO should have 0 available, got %d", fifo.Available())
	}

	written := fifo.Write([]byte{1, 2, 3, 4, 5})
	if written != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", written)
	}

	fifo.Pop(3)
	if fifo.Available() != 2 || fifo.Data()[0] != 4 {
		t.Errorf("After popping 3, expected [4 5], got %v", fifo.Data())
	}

	fifo.Reset()
	written = fifo.Write(make([]byte, 12))
	if written != 9 { // one slot stays empty
		t.Errorf("Expected to write 9 bytes to size-10 FIFO, wrote %d", written)
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)

	fifo.Write([]byte{1, 2, 3, 4})
	fifo.Pop(2)

	if written := fifo.Write([]byte{5, 6}); written != 2 {
		t.Errorf("Expected to write 2 bytes, wrote %d", written)
	}

	data := fifo.Data()
	if len(data) != 4 || data[0] != 3 || data[1] != 4 || data[2] != 5 || data[3] != 6 {
		t.Errorf("Wrap-around data mismatch: got %v", data)
	}
}
