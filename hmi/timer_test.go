package hmi

import "testing"

func TestTimerOrderAcrossWrap(t *testing.T) {
	c := New(DefaultConfig(), &recordingDisplay{}, newFakePrinter())
	var order []int
	mk := func(id int, wake uint32) *Timer {
		return &Timer{WakeTime: wake, Handler: func(*Timer) uint8 {
			order = append(order, id)
			return SF_DONE
		}}
	}
	c.ScheduleTimer(mk(3, 5))
	c.ScheduleTimer(mk(1, 0xFFFFFFF0))
	c.ScheduleTimer(mk(2, 0xFFFFFFFA))

	c.timerDispatch(0xFFFFFFF5)
	if len(order) != 1 || order[0] != 1 {
		t.Fatalf("before wrap ran %v", order)
	}
	c.timerDispatch(10)
	if len(order) != 3 || order[1] != 2 || order[2] != 3 {
		t.Errorf("after wrap ran %v", order)
	}
}

func TestTimerReschedule(t *testing.T) {
	c := New(DefaultConfig(), &recordingDisplay{}, newFakePrinter())
	runs := 0
	tm := &Timer{WakeTime: 100}
	tm.Handler = func(t *Timer) uint8 {
		runs++
		t.WakeTime += 100
		return SF_RESCHEDULE
	}
	c.ScheduleTimer(tm)
	c.ScheduleTimer(tm) // rescheduling the same timer must not duplicate it
	c.timerDispatch(100)
	c.timerDispatch(150)
	c.timerDispatch(300)
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}
