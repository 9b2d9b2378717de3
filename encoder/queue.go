package encoder

import "dwinhmi/hmi"

// Queue is an input source fed by another goroutine: a keyboard, a
// terminal or a test.
type Queue struct {
	ch chan hmi.Input
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan hmi.Input, size)}
}

// Push queues an event, dropping it when the queue is full
func (q *Queue) Push(in hmi.Input) bool {
	select {
	case q.ch <- in:
		return true
	default:
		return false
	}
}

// ReadInput implements hmi.InputSource
func (q *Queue) ReadInput(uint32) hmi.Input {
	select {
	case in := <-q.ch:
		return in
	default:
		return hmi.InputNone
	}
}

// Parse maps a short command word to an input event
func Parse(word string) (hmi.Input, bool) {
	switch word {
	case "r", "right", "cw", "+":
		return hmi.InputRotateRight, true
	case "l", "left", "ccw", "-":
		return hmi.InputRotateLeft, true
	case "c", "click", "enter":
		return hmi.InputClick, true
	case "b", "back", "long":
		return hmi.InputLongPress, true
	}
	return hmi.InputNone, false
}
