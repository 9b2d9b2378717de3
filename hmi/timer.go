package hmi

// Timer is a periodic job run from Poll
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// before reports whether a is earlier than b, across counter wrap
func before(a, b uint32) bool {
	return int32(a-b) < 0
}

// ScheduleTimer adds t to the controller's timer list
func (c *Controller) ScheduleTimer(t *Timer) {
	c.removeTimer(t)
	c.insertTimer(t)
}

// insertTimer inserts a timer in sorted order by WakeTime
func (c *Controller) insertTimer(t *Timer) {
	if c.timerList == nil || before(t.WakeTime, c.timerList.WakeTime) {
		t.Next = c.timerList
		c.timerList = t
		return
	}

	current := c.timerList
	for current.Next != nil && !before(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

func (c *Controller) removeTimer(t *Timer) {
	for p := &c.timerList; *p != nil; p = &(*p).Next {
		if *p == t {
			*p = t.Next
			t.Next = nil
			return
		}
	}
}

// timerDispatch runs all timers due at now
func (c *Controller) timerDispatch(now uint32) {
	for c.timerList != nil && !before(now, c.timerList.WakeTime) {
		timer := c.timerList
		c.timerList = timer.Next
		timer.Next = nil

		if timer.Handler(timer) == SF_RESCHEDULE {
			c.insertTimer(timer)
		}
	}
}

func (c *Controller) refreshEvent(t *Timer) uint8 {
	c.UpdateVariable()
	t.WakeTime += c.cfg.RefreshMs
	if before(t.WakeTime, c.now) {
		t.WakeTime = c.now + c.cfg.RefreshMs
	}
	return SF_RESCHEDULE
}

// clockEvent advances the print clock once per second
func (c *Controller) clockEvent(t *Timer) uint8 {
	if c.progress.active && !c.Flags.Has(FlagPause) {
		c.progress.elapsed++
		if c.progress.remaining > 0 {
			c.progress.remaining--
		}
		if c.current == PrintProcess {
			c.drawPrintTimes()
		}
	}
	t.WakeTime += 1000
	if before(t.WakeTime, c.now) {
		t.WakeTime = c.now + 1000
	}
	return SF_RESCHEDULE
}
