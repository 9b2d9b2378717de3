package panel

import (
	"bytes"
	"errors"
	"testing"

	"dwinhmi/hmi"
	"dwinhmi/protocol"
)

type frame struct {
	cmd     byte
	payload []byte
}

func decode(t *testing.T, data []byte) []frame {
	t.Helper()
	var frames []frame
	r := protocol.NewReceiver(func(cmd byte, payload []byte) {
		frames = append(frames, frame{cmd, append([]byte(nil), payload...)})
	})
	in := protocol.NewSliceInputBuffer(data)
	r.Receive(in)
	if in.Available() != 0 || r.Discarded != 0 {
		t.Fatalf("undecoded bytes: %d left, %d discarded", in.Available(), r.Discarded)
	}
	return frames
}

func TestDWINFrames(t *testing.T) {
	var buf bytes.Buffer
	d := NewDWIN(&buf)

	d.FillRect(10, 20, 30, 40, 0xF800)
	d.DrawString(hmi.Font8x16, 0xFFFF, 0x0000, 5, 6, "Hi")
	d.DrawFloat(hmi.Font8x16, 0xFFFF, 0x0000, 3, 1, 100, 200, -1.5)
	d.DrawIcon(hmi.IconLib, hmi.IconPrint, 0, 0)
	d.SetBrightness(0x80)
	if buf.Len() != 0 {
		t.Fatal("frames written before Update")
	}
	if err := d.Update(); err != nil {
		t.Fatal(err)
	}

	frames := decode(t, buf.Bytes())
	want := []byte{protocol.CmdRectangle, protocol.CmdString, protocol.CmdString, protocol.CmdValue,
		protocol.CmdIcon, protocol.CmdBacklight, protocol.CmdUpdate}
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(frames), len(want))
	}
	for i, f := range frames {
		if f.cmd != want[i] {
			t.Errorf("frame %d: cmd 0x%02X, want 0x%02X", i, f.cmd, want[i])
		}
	}

	// rectangle corners are inclusive
	rect := frames[0].payload
	if got := rect[7:11]; !bytes.Equal(got, []byte{0, 39, 0, 59}) {
		t.Errorf("rect end = %v", got)
	}
	// the sign is drawn as text, the magnitude as a value
	if sign := frames[2].payload[9:]; string(sign) != "-" {
		t.Errorf("sign = %q", sign)
	}
	value := frames[3].payload
	if n := value[len(value)-1]; n != 15 {
		t.Errorf("scaled value = %d, want 15", n)
	}
}

func TestDWINFlushesWhenFull(t *testing.T) {
	var buf bytes.Buffer
	d := NewDWIN(&buf)

	for i := 0; i < 100; i++ {
		d.DrawString(hmi.Font6x12, 0xFFFF, 0, 0, int16(i), "line")
	}
	if d.Flushes == 0 {
		t.Fatal("scratch buffer never flushed")
	}
	if err := d.Update(); err != nil {
		t.Fatal(err)
	}
	if got := len(decode(t, buf.Bytes())); got != 101 {
		t.Errorf("decoded %d frames, want 101", got)
	}
	if d.out.Overflows != 0 {
		t.Errorf("overflows = %d", d.out.Overflows)
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("link down")
}

func TestDWINWriteError(t *testing.T) {
	w := &failingWriter{}
	d := NewDWIN(w)
	d.Clear(0)
	if err := d.Update(); err == nil {
		t.Fatal("Update did not report the write error")
	}
	d.Clear(0)
	if err := d.Update(); err == nil {
		t.Fatal("second Update should retry and fail again")
	}
	if w.n != 2 {
		t.Errorf("writes = %d", w.n)
	}
}

func TestHandshake(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDWIN(&buf).Handshake(); err != nil {
		t.Fatal(err)
	}
	frames := decode(t, buf.Bytes())
	if len(frames) != 1 || frames[0].cmd != protocol.CmdHandshake {
		t.Errorf("frames = %v", frames)
	}
}

func TestScaled(t *testing.T) {
	tests := map[float64]int32{
		0:      0,
		1.25:   125,
		-2.5:   -250,
		0.004:  0,
		99.999: 10000,
	}
	for in, want := range tests {
		if got := scaled(in, 2); got != want {
			t.Errorf("scaled(%v, 2) = %d, want %d", in, got, want)
		}
	}
}
