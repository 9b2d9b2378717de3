package hmi

// HandleInput applies one encoder event to the active state. Popups only
// honor their own buttons; the kill screen ignores everything.
func (c *Controller) HandleInput(in Input) {
	if in == InputNone || c.current == Killed || c.rebooting {
		return
	}
	c.Stats.Inputs++
	n := c.nodes[c.current]
	switch n.kind {
	case kindMenu:
		c.menuInput(n, in)
	case kindEdit:
		c.editInput(in)
	case kindPopup:
		c.popupInput(in)
	}
}

func (c *Controller) menuInput(n *node, in Input) {
	switch in {
	case InputRotateRight:
		if c.cursor < c.itemCount(n)-1 {
			c.moveCursor(c.cursor + 1)
		}
	case InputRotateLeft:
		if c.cursor > 0 {
			c.moveCursor(c.cursor - 1)
		}
	case InputClick:
		c.activate(n, c.cursor)
	case InputLongPress:
		c.Back()
	}
}

func (c *Controller) editInput(in Input) {
	switch in {
	case InputRotateRight:
		c.stepEdit(1)
	case InputRotateLeft:
		c.stepEdit(-1)
	case InputClick:
		c.commitEdit()
	case InputLongPress:
		c.Back()
	}
}

func (c *Controller) popupInput(in Input) {
	switch in {
	case InputRotateRight, InputRotateLeft:
		if c.popup.buttons == 2 {
			c.popup.sel ^= 1
			c.Flags.Set(FlagSelect, c.popup.sel == 1)
			c.drawPopupButtons()
		}
	case InputClick:
		if c.popup.buttons > 0 {
			c.popupAccept()
		}
	case InputLongPress:
		c.popupCancel()
	}
}

// itemCount is the number of selectable lines of a menu
func (c *Controller) itemCount(n *node) int {
	if n.id == SelectFile {
		return 1 + len(c.files)
	}
	return len(n.items)
}

func (c *Controller) moveCursor(to int) {
	old := c.cursor
	c.cursor = to
	top := c.top
	c.scrollToCursor()
	switch {
	case c.current == PrintProcess:
		c.drawPrintButtons()
	case top != c.top:
		c.DrawMainArea(c.current)
	default:
		c.drawMenuCursor(old, false)
		c.drawMenuCursor(c.cursor, true)
	}
}

// activate runs the item under the cursor
func (c *Controller) activate(n *node, idx int) {
	if n.id == SelectFile {
		if idx == 0 {
			c.Back()
			return
		}
		c.startFile(idx - 1)
		return
	}
	if idx < 0 || idx >= len(n.items) {
		return
	}
	it := n.items[idx]
	switch it.cmd {
	case cmdEnter:
		c.selectArg(it.target, it.arg)
		c.enterChild(it.target)
	case cmdBack:
		c.Back()
	case cmdAction:
		c.runAction(it.act, it.arg)
	case cmdPrintMenu:
		c.openPrintMenu()
	case cmdExtruderMove:
		if c.printer.Status().HotendTemp < c.cfg.ExtrudeMinTemp {
			c.Flags.Set(FlagETempTooLow, true)
			c.showWait(waitColdExtrude)
			return
		}
		c.enterChild(it.target)
	case cmdStoreSettings:
		err := c.printer.Do(ActStoreSettings, 0)
		if err == nil {
			err = c.SaveSettings()
		}
		c.settingsResult(txtSettingsSaved, err)
	case cmdRestoreSettings:
		err := c.printer.Do(ActRestoreSettings, 0)
		if err == nil {
			err = c.RestoreSettings()
		}
		c.settingsResult(txtSettingsLoaded, err)
		c.RedrawScreen()
	case cmdResetSettings:
		err := c.printer.Do(ActResetSettings, 0)
		c.ResetDefaults()
		c.settingsResult(txtSettingsReset, err)
	case cmdDefaultColors:
		c.SetColorDefaults()
	case cmdAcceptColor:
		c.Prefs.Colors[c.colorIndex] = RGB(uint8(c.Value.Color[0]), uint8(c.Value.Color[1]), uint8(c.Value.Color[2]))
		c.Back()
	case cmdToggleRunout:
		c.SetRunoutState(!c.runoutEnabled())
	case cmdPauseResume:
		if c.Flags.Has(FlagPause) {
			c.showPauseOrStop(pauseResume)
		} else {
			c.showPauseOrStop(pausePause)
		}
	case cmdStopPrint:
		c.showPauseOrStop(pauseStop)
	case cmdReboot:
		c.runAction(ActReboot, 0)
	case cmdPID:
		c.runAction(ActPIDTune, it.arg)
	}
}

// runAction forwards a command to the printer and reports failures on the
// status line
func (c *Controller) runAction(a Action, arg int) bool {
	if err := c.printer.Do(a, arg); err != nil {
		c.Debug("action failed: " + err.Error())
		c.DrawStatusLine(c.Prefs.Colors[ColorAlertTxt], c.Prefs.Colors[ColorAlertBg], txtCommandFailed)
		c.AudioFeedback(false)
		return false
	}
	return true
}

func (c *Controller) settingsResult(ok string, err error) {
	if err != nil {
		c.Debug("settings: " + err.Error())
		c.DrawStatusLine(c.Prefs.Colors[ColorAlertTxt], c.Prefs.Colors[ColorAlertBg], txtSettingsFailed)
		c.AudioFeedback(false)
		return
	}
	c.DrawStatusLine(c.Prefs.Colors[ColorStatusTxt], c.Prefs.Colors[ColorStatusBg], ok)
	c.AudioFeedback(true)
}

// openPrintMenu shows the running print, the file list, or explains why
// there is nothing to print
func (c *Controller) openPrintMenu() {
	st := c.printer.Status()
	switch {
	case st.Printing || c.progress.active:
		c.transition(PrintProcess)
	case c.node(SelectFile) == nil || !st.MediaInserted:
		c.showNothingToDo(txtNoMedia)
	default:
		c.transition(SelectFile)
	}
}

func (c *Controller) startFile(i int) {
	if i < 0 || i >= len(c.files) {
		return
	}
	if c.runAction(ActStartPrint, i) {
		c.header = c.files[i]
	}
}

func (c *Controller) enterSelectFile(ProcessID) {
	c.files = c.printer.Files()
}

func (c *Controller) enterGetColor(from ProcessID) {
	if from != SelColor {
		return
	}
	r, g, b := SplitRGB(c.Prefs.Colors[c.colorIndex])
	c.Value.Color = [3]float64{float64(r), float64(g), float64(b)}
}
