package protocol

// InputBuffer provides an abstraction for reading incoming panel data
type InputBuffer interface {
	// Data returns the available data slice
	Data() []byte

	// Available returns the number of bytes available
	Available() int

	// Pop removes n bytes from the front of the buffer
	Pop(n int)
}

// OutputBuffer provides an abstraction for writing outgoing frames
type OutputBuffer interface {
	// Output writes data to the buffer
	Output(data []byte)

	// CurPosition returns the current write position
	CurPosition() int

	// DataSince returns data from a specific position to current
	DataSince(pos int) []byte
}

// SliceInputBuffer implements InputBuffer using a byte slice
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer creates a new SliceInputBuffer
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// ScratchOutput collects encoded frames in a fixed-size buffer until flushed.
// Writes past the end are truncated and counted in Overflows.
type ScratchOutput struct {
	buf       [FrameMax]byte
	pos       int
	Overflows uint32
}

// NewScratchOutput creates a new ScratchOutput
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
	if n < len(data) {
		s.Overflows++
	}
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Free returns how many bytes can still be written
func (s *ScratchOutput) Free() int {
	return len(s.buf) - s.pos
}

// Result returns the accumulated output data
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset clears the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a circular buffer for serial input
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a new FifoBuffer with the specified capacity
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data and returns how many bytes fit
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		next := (f.write + 1) % f.size
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		written++
	}
	return written
}

// Available returns the number of bytes available for reading
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Data returns available data as a contiguous slice.
// A wrapped buffer is copied.
func (f *FifoBuffer) Data() []byte {
	if f.read <= f.write {
		return f.buf[f.read:f.write]
	}
	out := make([]byte, f.Available())
	n := copy(out, f.buf[f.read:])
	copy(out[n:], f.buf[:f.write])
	return out
}

// Pop removes n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	for i := 0; i < n && f.read != f.write; i++ {
		f.read = (f.read + 1) % f.size
	}
}

// Reset clears the buffer
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
