package hmi

// Screen geometry of the 272x480 portrait panel
const (
	ScreenWidth  = 272
	ScreenHeight = 480

	titleHeight  = 30
	menuTop      = 31
	lineHeight   = 53
	menuLines    = 6
	cursorWidth  = 14
	menuIconX    = 20
	menuLabelX   = 60
	menuValueX   = 196
	statusLineY  = 350
	statusLineH  = 24
	readoutRow0  = 383
	readoutRowH  = 34
	readoutCol0  = 10
	readoutCol1  = 145
	popupX       = 14
	popupY       = 60
	popupW       = 244
	popupH       = 270
	buttonW      = 100
	buttonH      = 38
	printButtonY = 230
	printButtonW = 72
)

type readoutCache struct {
	valid        bool
	hotend       int32
	hotendTarget int32
	bed          int32
	bedTarget    int32
	fan          int32
	speed        int32
	flow         int32
	zoffset      int32 // hundredths
}

func (c *Controller) color(i int) uint16 {
	return c.Prefs.Colors[i]
}

func centerX(text string, size FontSize) int16 {
	w := int16(len(text)) * size.Width()
	if w >= ScreenWidth {
		return 0
	}
	return (ScreenWidth - w) / 2
}

func clip(text string, size FontSize, width int16) string {
	n := int(width / size.Width())
	if len(text) > n {
		return text[:n]
	}
	return text
}

// RedrawScreen repaints everything: main area, status line and readouts
func (c *Controller) RedrawScreen() {
	c.Stats.Redraws++
	c.dirty = true
	c.display.Clear(c.color(ColorBackground))
	if c.rebooting {
		c.DrawStatusLine(c.color(ColorStatusTxt), c.color(ColorStatusBg), txtRebooting)
		return
	}
	c.DrawMainArea(c.current)
	if c.current == Killed {
		return
	}
	c.DrawStatusLine(c.color(ColorStatusTxt), c.color(ColorStatusBg), c.status)
	c.readouts = readoutCache{}
	c.UpdateVariable()
}

// DrawMainArea renders the content of state p above the status line
func (c *Controller) DrawMainArea(p ProcessID) {
	n := c.node(p)
	if n == nil {
		return
	}
	c.dirty = true
	c.display.FillRect(0, 0, ScreenWidth, statusLineY, c.color(ColorBackground))
	switch {
	case p == Killed:
		c.display.FillRect(0, 0, ScreenWidth, ScreenHeight, c.color(ColorAlertBg))
		c.drawPopup()
	case n.kind == kindPopup:
		c.drawTitle(c.node(c.savedTarget()).title)
		c.drawPopup()
	case p == PrintProcess:
		c.drawPrintProcess()
	case p == PrintDone:
		c.drawPrintDone()
	case p == Info:
		c.drawInfo(n)
	case n.kind == kindEdit:
		c.drawEdit(n)
	default:
		c.drawTitle(n.title)
		c.drawMenu(n)
	}
}

func (c *Controller) drawTitle(title string) {
	bg := c.color(ColorTitleBg)
	c.display.FillRect(0, 0, ScreenWidth, titleHeight, bg)
	c.display.DrawString(Font8x16, c.color(ColorTitleTxt), bg, 14, (titleHeight-Font8x16.Height())/2, title)
}

// DrawStatusLine shows text on the status line in the given colors
func (c *Controller) DrawStatusLine(fg, bg uint16, text string) {
	c.dirty = true
	c.display.FillRect(0, statusLineY, ScreenWidth, statusLineH, bg)
	text = clip(text, Font8x16, ScreenWidth)
	if text != "" {
		c.display.DrawString(Font8x16, fg, bg, centerX(text, Font8x16), statusLineY+(statusLineH-Font8x16.Height())/2, text)
	}
}

func (c *Controller) drawMenu(n *node) {
	count := c.itemCount(n)
	for line := 0; line < menuLines; line++ {
		idx := c.top + line
		if idx >= count {
			break
		}
		c.drawMenuLine(n, idx, line)
	}
}

func lineY(line int) int16 {
	return menuTop + int16(line)*lineHeight
}

func (c *Controller) itemLabel(n *node, idx int) (string, uint8) {
	if n.id == SelectFile {
		if idx == 0 {
			return txtBack, IconBack
		}
		return c.files[idx-1], IconFile
	}
	it := n.items[idx]
	if it.cmd == cmdPauseResume && c.Flags.Has(FlagPause) {
		return txtResume, IconResume
	}
	return it.label, it.icon
}

func (c *Controller) drawMenuLine(n *node, idx, line int) {
	y := lineY(line)
	bg := c.color(ColorBackground)
	c.display.FillRect(0, y, ScreenWidth, lineHeight, bg)
	label, icon := c.itemLabel(n, idx)
	c.display.DrawIcon(IconLib, icon, menuIconX, y+(lineHeight-24)/2)
	c.display.DrawString(Font8x16, c.color(ColorText), bg, menuLabelX, y+(lineHeight-Font8x16.Height())/2,
		clip(label, Font8x16, menuValueX-menuLabelX))
	c.drawItemValue(n, idx, y, false)
	c.display.DrawLine(16, y+lineHeight-1, ScreenWidth-16, y+lineHeight-1, c.color(ColorSplitLine))
	if idx == c.cursor {
		c.display.FillRect(0, y, cursorWidth, lineHeight-1, c.color(ColorCursor))
	}
}

func (c *Controller) drawMenuCursor(idx int, on bool) {
	line := idx - c.top
	if line < 0 || line >= menuLines {
		return
	}
	color := c.color(ColorBackground)
	if on {
		color = c.color(ColorCursor)
	}
	c.dirty = true
	c.display.FillRect(0, lineY(line), cursorWidth, lineHeight-1, color)
}

// drawItemValue draws the value column of a menu line
func (c *Controller) drawItemValue(n *node, idx int, y int16, selected bool) {
	if n.id == SelectFile || idx >= len(n.items) {
		return
	}
	it := n.items[idx]
	fg, bg := c.color(ColorText), c.color(ColorBackground)
	if selected {
		fg, bg = c.color(ColorHighlight), c.color(ColorSelected)
	}
	vy := y + (lineHeight-Font8x16.Height())/2

	switch {
	case it.cmd == cmdToggleRunout:
		s := txtOff
		if c.runoutEnabled() {
			s = txtOn
		}
		c.display.DrawString(Font8x16, fg, bg, menuValueX, vy, padLeft(s, 3))
		return
	case it.target == GetColor && n.id == SelColor:
		c.display.FillRect(menuValueX, y+12, 48, lineHeight-24, c.Prefs.Colors[it.arg])
		return
	case it.cmd != cmdEnter && it.cmd != cmdExtruderMove:
		return
	}
	t := c.node(it.target)
	if t == nil || t.kind != kindEdit {
		return
	}
	desc := t.edit
	arg := 0
	if desc.arg != nil {
		arg = it.arg
	}
	var v float64
	if c.editing && c.current == it.target && c.edit.arg == arg {
		v = *desc.editField(&c.Value, arg)
	} else {
		v = desc.load(c, arg)
	}
	c.display.DrawFloat(Font8x16, fg, bg, desc.digits, desc.frac, menuValueX, vy, v)
}

// editLine returns the parent menu line of the active edit, if visible
func (c *Controller) editLine() (*node, int, bool) {
	pn := c.node(c.parentOf(c.current))
	if pn == nil || pn.kind != kindMenu || c.cursor >= len(pn.items) {
		return nil, 0, false
	}
	if pn.items[c.cursor].target != c.current {
		return nil, 0, false
	}
	line := c.cursor - c.top
	if line < 0 || line >= menuLines {
		return nil, 0, false
	}
	return pn, line, true
}

func (c *Controller) drawEdit(n *node) {
	if pn, _, ok := c.editLine(); ok {
		c.drawTitle(pn.title)
		c.drawMenu(pn)
		c.drawEditValue()
		return
	}
	c.drawTitle(n.title)
	c.drawEditValue()
}

// drawEditValue redraws the value being edited, highlighted
func (c *Controller) drawEditValue() {
	if !c.editing {
		return
	}
	c.dirty = true
	desc := c.edit.desc
	v := *desc.editField(&c.Value, c.edit.arg)
	fg, bg := c.color(ColorHighlight), c.color(ColorSelected)
	if _, line, ok := c.editLine(); ok {
		y := lineY(line) + (lineHeight-Font8x16.Height())/2
		c.display.DrawFloat(Font8x16, fg, bg, desc.digits, desc.frac, menuValueX, y, v)
		return
	}
	width := int16(desc.digits+desc.frac+2) * Font16x32.Width()
	c.display.DrawFloat(Font16x32, fg, bg, desc.digits, desc.frac, (ScreenWidth-width)/2, 160, v)
}

func (c *Controller) popupColors() (fg, bg uint16) {
	if c.popup.alert {
		return c.color(ColorAlertTxt), c.color(ColorAlertBg)
	}
	return c.color(ColorPopupTxt), c.color(ColorPopupBg)
}

func (c *Controller) drawPopup() {
	p := &c.popup
	fg, bg := c.popupColors()
	c.display.FillRect(popupX, popupY, popupW, popupH, bg)
	c.display.DrawIcon(IconLib, p.icon, (ScreenWidth-48)/2, popupY+20)
	y := int16(popupY + 100)
	for _, s := range []string{p.title, p.line1, p.line2} {
		if s != "" {
			s = clip(s, Font8x16, popupW)
			c.display.DrawString(Font8x16, fg, bg, centerX(s, Font8x16), y, s)
		}
		y += 26
	}
	if c.current == Leveling {
		c.drawMeshPoint()
	}
	c.drawPopupButtons()
}

func (c *Controller) drawPopupButtons() {
	p := &c.popup
	if p.buttons == 0 {
		return
	}
	c.dirty = true
	_, bg := c.popupColors()
	y := int16(popupY + popupH - buttonH - 20)
	xs := [2]int16{(ScreenWidth - buttonW) / 2}
	if p.buttons == 2 {
		xs = [2]int16{popupX + 12, popupX + popupW - 12 - buttonW}
	}
	for i := 0; i < p.buttons; i++ {
		fill := c.color(ColorSplitLine)
		if i == p.sel {
			fill = c.color(ColorSelected)
		}
		c.display.FillRect(xs[i], y-2, buttonW+4, buttonH+4, bg)
		c.display.FillRect(xs[i], y, buttonW, buttonH, fill)
		label := p.labels[i]
		c.display.DrawString(Font8x16, c.color(ColorHighlight), fill,
			xs[i]+(buttonW-int16(len(label))*Font8x16.Width())/2, y+(buttonH-Font8x16.Height())/2, label)
	}
}

func (c *Controller) drawMeshPoint() {
	if c.current != Leveling || c.mesh.points == 0 {
		return
	}
	c.dirty = true
	fg, bg := c.popupColors()
	s := "Point " + utoa(uint32(c.mesh.points)) + "  Z " + FormatFixed(c.mesh.z, 2)
	y := int16(popupY + 100 + 2*26)
	c.display.FillRect(popupX, y, popupW, Font8x16.Height(), bg)
	c.display.DrawString(Font8x16, fg, bg, centerX(s, Font8x16), y, s)
}

func (c *Controller) drawInfo(n *node) {
	c.drawTitle(n.title)
	c.drawMenuLine(n, 0, 0)
	fg, bg := c.color(ColorText), c.color(ColorBackground)
	rows := [][2]string{
		{c.cfg.MachineName, ""},
		{txtSize, c.cfg.BedSize},
		{txtContact, c.cfg.Contact},
	}
	y := lineY(1) + 10
	for _, r := range rows {
		c.display.DrawString(Font8x16, c.color(ColorCoordinate), bg, centerX(r[0], Font8x16), y, r[0])
		if r[1] != "" {
			c.display.DrawString(Font8x16, fg, bg, centerX(r[1], Font8x16), y+22, r[1])
		}
		y += lineHeight + 20
	}
}

func (c *Controller) drawPrintProcess() {
	title := txtPrinting
	if c.Flags.Has(FlagPause) {
		title = txtPaused
	}
	c.drawTitle(title)
	c.drawPrintHeader()
	c.drawProgress()
	c.drawPrintTimes()
	c.drawPrintButtons()
}

func (c *Controller) drawPrintHeader() {
	c.dirty = true
	bg := c.color(ColorBackground)
	c.display.FillRect(0, 40, ScreenWidth, Font8x16.Height(), bg)
	h := clip(c.header, Font8x16, ScreenWidth)
	c.display.DrawString(Font8x16, c.color(ColorText), bg, centerX(h, Font8x16), 40, h)
}

func (c *Controller) drawProgress() {
	c.dirty = true
	const x, y, w, h = 20, 80, ScreenWidth - 40, 20
	c.display.FillRect(x, y, w, h, c.color(ColorSplitLine))
	fill := int16(int32(w) * int32(c.progress.percent) / 100)
	if fill > 0 {
		c.display.FillRect(x, y, fill, h, c.color(ColorBarfill))
	}
	bg := c.color(ColorBackground)
	s := padLeft(utoa(uint32(c.progress.percent)), 3) + "%"
	c.display.DrawString(Font12x24, c.color(ColorPercentTxt), bg, centerX(s, Font12x24), 110, s)
}

func (c *Controller) drawPrintTimes() {
	c.dirty = true
	fg, bg := c.color(ColorText), c.color(ColorBackground)
	c.display.DrawIcon(IconLib, IconPrintTime, 14, 160)
	c.display.DrawString(Font6x12, fg, bg, 44, 158, txtElapsed)
	c.display.DrawString(Font8x16, fg, bg, 44, 174, formatDuration(c.progress.elapsed))
	c.display.DrawIcon(IconLib, IconRemainTime, 140, 160)
	c.display.DrawString(Font6x12, fg, bg, 170, 158, txtRemain)
	c.display.DrawString(Font8x16, fg, bg, 170, 174, formatDuration(c.progress.remaining))
}

func (c *Controller) drawPrintButtons() {
	n := c.node(PrintProcess)
	if n == nil || c.current != PrintProcess {
		return
	}
	c.dirty = true
	gap := int16(ScreenWidth-3*printButtonW) / 4
	for i := 0; i < len(n.items) && i < 3; i++ {
		x := gap + int16(i)*(printButtonW+gap)
		fill := c.color(ColorSplitLine)
		if i == c.cursor {
			fill = c.color(ColorSelected)
		}
		c.display.FillRect(x, printButtonY, printButtonW, printButtonW, fill)
		label, icon := c.itemLabel(n, i)
		c.display.DrawIcon(IconLib, icon, x+12, printButtonY+6)
		c.display.DrawString(Font6x12, c.color(ColorHighlight), fill,
			x+(printButtonW-int16(len(label))*Font6x12.Width())/2, printButtonY+printButtonW-16, label)
	}
}

func (c *Controller) drawPrintDone() {
	c.drawTitle(txtPrintDone)
	c.drawPrintHeader()
	c.drawProgress()
	c.drawPrintTimes()
	x := int16(ScreenWidth-buttonW) / 2
	fill := c.color(ColorSelected)
	c.display.FillRect(x, printButtonY, buttonW, buttonH, fill)
	c.display.DrawString(Font8x16, c.color(ColorHighlight), fill,
		x+(buttonW-int16(len(txtConfirm))*Font8x16.Width())/2, printButtonY+(buttonH-Font8x16.Height())/2, txtConfirm)
}

func round32(v float64) int32 {
	if v < 0 {
		return int32(v - 0.5)
	}
	return int32(v + 0.5)
}

func (c *Controller) drawReadout(icon uint8, col, row int16, text string) {
	x := []int16{readoutCol0, readoutCol1}[col]
	y := readoutRow0 + row*readoutRowH
	bg := c.color(ColorBackground)
	c.display.DrawIcon(IconLib, icon, x, y)
	c.display.DrawString(Font8x16, c.color(ColorText), bg, x+30, y+4, padLeft(text, 8))
}

// UpdateVariable redraws the live readouts that changed since the last call
func (c *Controller) UpdateVariable() {
	if c.current == Killed || c.rebooting {
		return
	}
	st := c.printer.Status()
	r := readoutCache{
		valid:        true,
		hotend:       round32(st.HotendTemp),
		hotendTarget: round32(st.HotendTarget),
		bed:          round32(st.BedTemp),
		bedTarget:    round32(st.BedTarget),
		fan:          round32(st.FanSpeed),
		speed:        round32(st.Feedrate),
		flow:         round32(st.Flow),
		zoffset:      round32(st.ZOffset * 100),
	}
	old := c.readouts
	c.readouts = r
	changed := !old.valid

	if c.caps.Has(CapHotend) && (changed || old.hotend != r.hotend || old.hotendTarget != r.hotendTarget) {
		c.drawReadout(IconHotend, 0, 0, itoa(int(r.hotend))+"/"+itoa(int(r.hotendTarget)))
		c.dirty = true
	}
	if c.caps.Has(CapBed) && (changed || old.bed != r.bed || old.bedTarget != r.bedTarget) {
		c.drawReadout(IconBed, 1, 0, itoa(int(r.bed))+"/"+itoa(int(r.bedTarget)))
		c.dirty = true
	}
	if changed || old.speed != r.speed {
		c.drawReadout(IconSpeed, 0, 1, itoa(int(r.speed))+"%")
		c.dirty = true
	}
	if changed || old.flow != r.flow {
		c.drawReadout(IconFlow, 1, 1, itoa(int(r.flow))+"%")
		c.dirty = true
	}
	if c.caps.Has(CapFan) && (changed || old.fan != r.fan) {
		c.drawReadout(IconFan, 0, 2, itoa(int(r.fan)))
		c.dirty = true
	}
	if changed || old.zoffset != r.zoffset {
		c.drawReadout(IconZOffset, 1, 2, FormatFixed(float64(r.zoffset)/100, 2))
		c.dirty = true
	}
}
