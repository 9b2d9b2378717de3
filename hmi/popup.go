package hmi

type waitReason uint8

const (
	waitUser waitReason = iota
	waitRunout
	waitColdExtrude
	waitTempTooHigh
	waitTempTooLow
)

type pauseAction uint8

const (
	pausePause pauseAction = iota
	pauseResume
	pauseStop
)

// popupState is the content of the active popup
type popupState struct {
	icon    uint8
	title   string
	line1   string
	line2   string
	alert   bool
	buttons int // 0, 1 or 2
	labels  [2]string
	sel     int

	wait    waitReason
	message string
	extr    int // extruder of a pending runout, -1 when none
	pause   pauseAction
	pid     PIDResult
	pidDone bool
}

func (p *popupState) setButtons(labels ...string) {
	p.buttons = copy(p.labels[:], labels)
}

func (p *popupState) set(icon uint8, title, line1, line2 string) {
	p.icon, p.title, p.line1, p.line2 = icon, title, line1, line2
	p.alert = false
	p.buttons = 0
}

func (c *Controller) enterHoming(ProcessID) {
	c.popup.set(IconHoming, txtHoming, txtPleaseWait, "")
}

func (c *Controller) enterLeveling(from ProcessID) {
	c.popup.set(IconLeveling, txtLeveling, txtPleaseWait, "")
	if from != Leveling {
		c.mesh = meshState{}
	}
}

func (c *Controller) enterPauseOrStop(ProcessID) {
	switch c.popup.pause {
	case pausePause:
		c.popup.set(IconPause, txtPause, txtPauseQuestion, "")
	case pauseResume:
		c.popup.set(IconResume, txtResume, txtResumeQuestion, "")
	default:
		c.popup.set(IconStop, txtStop, txtStopQuestion, "")
	}
	c.popup.setButtons(txtConfirm, txtCancel)
}

func (c *Controller) enterFilamentPurge(ProcessID) {
	c.popup.set(IconFilament, txtChangeFilament, txtPurgeQuestion, "")
	c.popup.setButtons(txtPurgeMore, txtContinue)
}

func (c *Controller) enterWaitResponse(ProcessID) {
	p := &c.popup
	switch p.wait {
	case waitRunout:
		p.set(IconRunout, txtRunoutTitle, txtRunoutHint, "E"+itoa(p.extr))
		p.alert = true
	case waitColdExtrude:
		p.set(IconTempTooLow, txtExtruder, txtColdExtrude, txtColdHint)
		p.alert = true
	case waitTempTooHigh:
		p.set(IconTempTooHigh, txtHotend, txtTempTooHigh, "")
		p.alert = true
	case waitTempTooLow:
		p.set(IconTempTooLow, txtHotend, txtTempTooLow, "")
		p.alert = true
	default:
		msg := p.message
		if msg == "" {
			msg = txtWaiting
		}
		p.set(IconContinue, txtWaiting, msg, "")
	}
	p.setButtons(txtContinue)
}

func (c *Controller) enterNothingToDo(ProcessID) {
	msg := c.popup.message
	if msg == "" {
		msg = txtNotPrinting
	}
	c.popup.set(IconWarning, txtNothingToDo, msg, "")
	c.popup.setButtons(txtConfirm)
}

func (c *Controller) enterPidProcess(ProcessID) {
	p := &c.popup
	switch p.pid {
	case PIDExtruderStart:
		p.set(IconPID, txtPIDTitle, txtPIDHotend, txtPleaseWait)
	case PIDBedStart:
		p.set(IconPID, txtPIDTitle, txtPIDBed, txtPleaseWait)
	case PIDDone:
		p.set(IconConfirm, txtPIDTitle, txtPIDDone, "")
		p.setButtons(txtConfirm)
	case PIDBadExtruderNum:
		p.set(IconWarning, txtPIDTitle, txtPIDBadExtruder, "")
		p.alert = true
		p.setButtons(txtConfirm)
	case PIDTempTooHigh:
		p.set(IconTempTooHigh, txtPIDTitle, txtPIDTooHigh, "")
		p.alert = true
		p.setButtons(txtConfirm)
	case PIDTuningTimeout:
		p.set(IconWarning, txtPIDTitle, txtPIDTimeout, "")
		p.alert = true
		p.setButtons(txtConfirm)
	}
}

func (c *Controller) enterKilled(ProcessID) {
	msg := c.popup.message
	if msg == "" {
		msg = txtPrinterHalted
	}
	c.popup.set(IconPrinterHalt, msg, c.popup.line2, txtPleaseReset)
	c.popup.alert = true
	c.editing = false
}

func (c *Controller) showWait(reason waitReason) {
	c.popup.wait = reason
	c.transition(WaitResponse)
}

func (c *Controller) showNothingToDo(msg string) {
	c.popup.message = msg
	c.transition(NothingToDo)
}

func (c *Controller) showPauseOrStop(a pauseAction) {
	c.popup.pause = a
	c.transition(PauseOrStop)
}

// popupAccept runs the selected button of the active popup
func (c *Controller) popupAccept() {
	confirm := c.popup.sel == 0
	switch c.current {
	case PauseOrStop:
		if confirm {
			switch c.popup.pause {
			case pausePause:
				c.Flags.Set(FlagPauseAction, true)
				c.runAction(ActPause, 0)
			case pauseResume:
				c.runAction(ActResume, 0)
			case pauseStop:
				c.runAction(ActStop, 0)
			}
		}
	case FilamentPurge:
		if confirm {
			c.runAction(ActPurgeMore, 0)
		} else {
			c.runAction(ActPurgeDone, 0)
		}
	case WaitResponse:
		switch c.popup.wait {
		case waitRunout, waitUser:
			c.runAction(ActUserContinue, 0)
		case waitColdExtrude:
			c.Flags.Set(FlagETempTooLow, false)
		}
		c.popup.extr = -1
	}
	c.leavePopup()
}

// popupCancel dismisses the active popup without acting. The kill screen
// cannot be dismissed.
func (c *Controller) popupCancel() {
	switch c.current {
	case Killed:
		return
	case Homing:
		c.Flags.Set(FlagHome, false)
	case WaitResponse:
		if c.popup.wait == waitColdExtrude {
			c.Flags.Set(FlagETempTooLow, false)
		}
		c.popup.extr = -1
	}
	c.leavePopup()
}

func (c *Controller) leavePopup() {
	// an action above may already have moved the state machine on
	if !c.current.IsPopup() || c.current == Killed {
		return
	}
	next := c.returnTarget()
	if !next.IsPopup() {
		c.popup.message = ""
	}
	c.transition(next)
}
