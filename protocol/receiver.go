package protocol

// ResponseHandler is called for every complete frame received from the panel
type ResponseHandler func(cmd byte, payload []byte)

// Receiver splits the panel's byte stream into frames. Bytes before a frame
// header are discarded; a header with no tail within ResponseMax bytes is
// treated as garbage.
type Receiver struct {
	handler   ResponseHandler
	Frames    uint32
	Discarded uint32
}

// NewReceiver creates a Receiver dispatching to handler
func NewReceiver(handler ResponseHandler) *Receiver {
	return &Receiver{handler: handler}
}

// Receive consumes all complete frames in input. Partial frames are left in
// place for the next call.
func (r *Receiver) Receive(input InputBuffer) {
	data := input.Data()

	for len(data) > 0 {
		if data[0] != FrameHeader {
			skip := 1
			for skip < len(data) && data[skip] != FrameHeader {
				skip++
			}
			r.Discarded += uint32(skip)
			data = data[skip:]
			continue
		}

		if len(data) < 2+len(FrameTail) {
			break
		}

		end := findTail(data[2:])
		if end < 0 {
			if len(data) > 2+ResponseMax+len(FrameTail) {
				r.Discarded++
				data = data[1:]
				continue
			}
			break
		}

		cmd := data[1]
		payload := data[2 : 2+end]
		data = data[2+end+len(FrameTail):]
		r.Frames++
		if r.handler != nil {
			r.handler(cmd, payload)
		}
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}

func findTail(data []byte) int {
	for i := 0; i+len(FrameTail) <= len(data) && i <= ResponseMax; i++ {
		if data[i] == FrameTail[0] && data[i+1] == FrameTail[1] &&
			data[i+2] == FrameTail[2] && data[i+3] == FrameTail[3] {
			return i
		}
	}
	return -1
}

// IsHandshakeReply reports whether a frame is the panel's answer to Handshake
func IsHandshakeReply(cmd byte, payload []byte) bool {
	return cmd == CmdHandshake && len(payload) >= 2 && payload[0] == 'O' && payload[1] == 'K'
}
