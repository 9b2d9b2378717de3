package hmi

import (
	"errors"
	"math"
	"testing"
)

func TestHomingReturnsToPreviousScreen(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Control)
	h.open(Motion)

	h.c.StartHoming()
	if h.c.Current() != Homing {
		t.Fatalf("expected Homing, got %v", h.c.Current())
	}
	if !h.c.Flags.Has(FlagHome) {
		t.Error("HomeFlag not set")
	}

	// navigation is suppressed while the popup is up
	h.c.HandleInput(InputRotateRight)
	h.c.HandleInput(InputClick)
	if h.c.Current() != Homing {
		t.Fatalf("popup left on navigation input, now %v", h.c.Current())
	}

	h.c.HomingCompleted()
	if h.c.Current() != Motion {
		t.Errorf("expected Motion, got %v", h.c.Current())
	}
	if h.c.Flags.Has(FlagHome) {
		t.Error("HomeFlag still set")
	}
}

func TestStaleHomingCompletedIgnored(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)
	stale := h.c.Stats.Stale
	h.c.HomingCompleted()
	if h.c.Current() != Prepare {
		t.Errorf("stale event moved to %v", h.c.Current())
	}
	if h.c.Stats.Stale != stale+1 {
		t.Error("stale event not counted")
	}
}

func TestPopupCancelReturnsToSaved(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)
	h.c.StartHoming()
	h.c.HandleInput(InputLongPress)
	if h.c.Current() != Prepare {
		t.Errorf("expected Prepare, got %v", h.c.Current())
	}
	if h.c.Flags.Has(FlagHome) {
		t.Error("HomeFlag kept after cancel")
	}
}

func TestHomingOverWaitReturnsToWait(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)
	h.c.WaitForUser("Insert card")
	h.c.StartHoming()
	if h.c.Current() != Homing {
		t.Fatalf("expected Homing, got %v", h.c.Current())
	}
	h.d.reset()
	h.c.HomingCompleted()
	if h.c.Current() != WaitResponse {
		t.Fatalf("homing returned to %v, want WaitResponse", h.c.Current())
	}
	if !h.d.drew("Insert card") {
		t.Errorf("wait message lost: %v", h.d.strings)
	}

	h.c.HandleInput(InputClick)
	if !h.p.did(ActUserContinue) {
		t.Error("continue not sent to the printer")
	}
	if h.c.Current() != Prepare {
		t.Errorf("expected Prepare, got %v", h.c.Current())
	}
}

func TestHomingCompletedUnderRunout(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)
	h.c.StartHoming()
	h.c.FilamentRunout(0)
	if h.c.Current() != WaitResponse {
		t.Fatalf("expected WaitResponse, got %v", h.c.Current())
	}

	stale := h.c.Stats.Stale
	h.c.HomingCompleted()
	if h.c.Stats.Stale != stale {
		t.Error("homing completion under a popup counted as stale")
	}
	if h.c.Flags.Has(FlagHome) {
		t.Error("HomeFlag still set")
	}
	if h.c.Current() != WaitResponse {
		t.Fatalf("runout popup closed by homing: %v", h.c.Current())
	}

	h.c.HandleInput(InputClick)
	if h.c.Current() != Prepare {
		t.Errorf("runout returned to %v, want Prepare", h.c.Current())
	}
}

func TestCancelledPopupReturnsToCovered(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)
	h.c.FilamentRunout(1)
	h.c.StartHoming()
	h.c.HandleInput(InputLongPress)
	if h.c.Current() != WaitResponse || h.c.popup.extr != 1 {
		t.Fatalf("cancel returned to %v extruder %d", h.c.Current(), h.c.popup.extr)
	}
	h.c.HandleInput(InputLongPress)
	if h.c.Current() != Prepare {
		t.Errorf("expected Prepare, got %v", h.c.Current())
	}
}

func TestPopupDiscardsUncommittedEdit(t *testing.T) {
	h := newHarness(t, CapAll)
	h.p.settings[settingKey{SettingHotendTarget, 0}] = 180
	h.open(Control)
	h.open(TemperatureID)
	h.open(ETemp)
	h.c.SetEditValue(250)

	h.c.StartHoming()
	if h.c.Value.ETemp != 180 {
		t.Errorf("uncommitted edit kept: %v", h.c.Value.ETemp)
	}
	h.c.HandleInput(InputLongPress)
	if h.c.Current() != ETemp {
		t.Fatalf("expected ETemp, got %v", h.c.Current())
	}
	if v, ok := h.c.EditValue(); !ok || v != 180 {
		t.Errorf("edit value after popup %v %v", v, ok)
	}
	if h.p.sets != 0 {
		t.Error("printer written without confirm")
	}
}

func TestLevelingFlow(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)
	h.c.MeshPointUpdated(1, 1, 0.1) // not leveling: ignored
	h.c.LevelingStarted()
	if h.c.Current() != Leveling {
		t.Fatalf("expected Leveling, got %v", h.c.Current())
	}
	h.d.reset()
	h.c.MeshPointUpdated(2, 3, -0.125)
	if !h.d.drew("Point 1") {
		t.Errorf("mesh progress not drawn: %v", h.d.strings)
	}
	h.c.LevelingCompleted()
	if h.c.Current() != Prepare {
		t.Errorf("expected Prepare, got %v", h.c.Current())
	}
}

func TestLevelingGated(t *testing.T) {
	h := newHarness(t, CapAll&^CapLeveling)
	h.c.LevelingStarted()
	if h.c.Current() != MainMenu {
		t.Errorf("leveling popup shown without leveling: %v", h.c.Current())
	}
}

func TestFilamentRunoutIdempotent(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(Prepare)

	h.c.FilamentRunout(2)
	if h.c.Current() != WaitResponse {
		t.Fatalf("expected WaitResponse, got %v", h.c.Current())
	}
	cur, saved, popup, flags := h.c.current, h.c.saved, h.c.popup, h.c.Flags
	redraws := h.c.Stats.Redraws

	h.c.FilamentRunout(2)
	if h.c.current != cur || h.c.saved != saved || h.c.popup != popup || h.c.Flags != flags {
		t.Error("second runout changed state")
	}
	if h.c.Stats.Redraws != redraws {
		t.Error("second runout redrew the screen")
	}

	h.c.HandleInput(InputClick)
	if !h.p.did(ActUserContinue) {
		t.Error("continue not sent to the printer")
	}
	if h.c.Current() != Prepare {
		t.Errorf("expected Prepare, got %v", h.c.Current())
	}
}

func TestFilamentRunoutOtherExtruder(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.FilamentRunout(0)
	h.c.FilamentRunout(1)
	if h.c.popup.extr != 1 {
		t.Errorf("runout extruder %d, want 1", h.c.popup.extr)
	}
	if h.c.Saved() != MainMenu {
		t.Errorf("saved %v, want MainMenu", h.c.Saved())
	}
}

func TestKillIsTerminal(t *testing.T) {
	for _, setup := range []struct {
		name string
		run  func(h *harness)
	}{
		{"menu", func(h *harness) { h.open(Control) }},
		{"edit", func(h *harness) { h.open(Prepare); h.open(Zoffset) }},
		{"popup", func(h *harness) { h.c.StartHoming() }},
	} {
		t.Run(setup.name, func(t *testing.T) {
			h := newHarness(t, CapAll)
			setup.run(h)
			h.c.PrinterKilled("Thermal Runaway", "E1")
			if h.c.Current() != Killed {
				t.Fatalf("expected Killed, got %v", h.c.Current())
			}
			if !h.d.drew("Thermal Runaway") || !h.d.drew("E1") {
				t.Error("kill message not drawn")
			}

			for _, in := range []Input{InputRotateLeft, InputRotateRight, InputClick, InputLongPress} {
				h.c.HandleInput(in)
			}
			h.c.Back()
			h.c.HomingCompleted()
			h.c.PrintStarted(false)
			h.c.Post(Event{Kind: EvWaitForUser})
			h.c.Poll(5000)

			if h.c.Current() != Killed {
				t.Errorf("left kill screen: %v", h.c.Current())
			}
			if err := h.c.TransitionTo(MainMenu); !errors.Is(err, ErrKilled) {
				t.Errorf("TransitionTo: %v", err)
			}
			if h.p.sets != 0 {
				t.Error("printer written after kill")
			}
		})
	}
}

func TestKillPostedToFullQueue(t *testing.T) {
	h := newHarness(t, CapAll)
	for i := 0; i < eventQueueSize; i++ {
		if !h.c.Post(Event{Kind: EvStatus, Text: "x"}) {
			t.Fatalf("queue full after %d events", i)
		}
	}
	if h.c.Post(Event{Kind: EvStatus}) {
		t.Error("overfull queue accepted an event")
	}
	if h.c.Stats.Dropped != 1 {
		t.Errorf("Dropped = %d", h.c.Stats.Dropped)
	}
	if !h.c.Post(Event{Kind: EvKilled, Text: "halted"}) {
		t.Error("kill dropped")
	}
	h.c.Poll(1)
	if h.c.Current() != Killed {
		t.Errorf("expected Killed, got %v", h.c.Current())
	}
}

func TestProgressClamped(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.PrintStarted(true)

	h.c.ProgressUpdate(150, 10)
	pct, _, remaining := h.c.Progress()
	if pct != 100 || remaining != 10 {
		t.Errorf("progress %d%% remaining %d", pct, remaining)
	}
	h.c.ProgressUpdate(-5, 10)
	if pct, _, _ = h.c.Progress(); pct != 0 {
		t.Errorf("negative progress stored as %d", pct)
	}
	h.c.ProgressUpdate(math.MaxInt, math.MaxInt)
	if pct, _, remaining = h.c.Progress(); pct != 100 || remaining != math.MaxInt32 {
		t.Errorf("huge progress stored as %d%% remaining %d", pct, remaining)
	}
	if h.c.Current() != PrintProcess {
		t.Errorf("progress changed state to %v", h.c.Current())
	}
}

func TestPrintLifecycle(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.PrintStarted(true)
	h.c.ProgressUpdate(40, 600)
	h.c.Poll(1000)
	h.c.Poll(2000)
	if _, elapsed, _ := h.c.Progress(); elapsed != 2 {
		t.Errorf("elapsed %d, want 2", elapsed)
	}

	h.c.PauseShow(true)
	h.c.Poll(3000)
	if _, elapsed, _ := h.c.Progress(); elapsed != 2 {
		t.Errorf("clock ran while paused: %d", elapsed)
	}

	h.c.PrintStarted(true)
	if pct, elapsed, _ := h.c.Progress(); pct != 0 || elapsed != 0 {
		t.Errorf("restart kept progress %d%% %ds", pct, elapsed)
	}
	if h.c.Flags.Has(FlagPause) {
		t.Error("pause flag survived a new print")
	}

	h.c.PrintStopped()
	if h.c.Current() != PrintDone {
		t.Fatalf("expected PrintDone, got %v", h.c.Current())
	}
	if !h.c.Flags.Has(FlagPrintFinish) {
		t.Error("PrintFinish not set")
	}
	h.c.HandleInput(InputClick)
	if h.c.Current() != MainMenu {
		t.Errorf("expected MainMenu, got %v", h.c.Current())
	}
}

func TestPrintStoppedOutsidePrintScreen(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.PrintStarted(true)
	h.c.HandleInput(InputLongPress) // back to MainMenu
	h.open(Control)
	h.c.PrintStopped()
	if h.c.Current() != Control {
		t.Errorf("expected to stay in Control, got %v", h.c.Current())
	}
	if !h.c.Flags.Has(FlagPrintFinish) {
		t.Error("PrintFinish not set")
	}
}

func TestPauseOrStopConfirm(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.PrintStarted(true)
	h.selectItem(1)
	if h.c.Current() != PauseOrStop {
		t.Fatalf("expected PauseOrStop, got %v", h.c.Current())
	}

	// move to Cancel and back to Confirm
	h.c.HandleInput(InputRotateRight)
	if !h.c.Flags.Has(FlagSelect) {
		t.Error("SelectFlag not set on the right button")
	}
	h.c.HandleInput(InputRotateLeft)
	h.c.HandleInput(InputClick)
	if !h.p.did(ActPause) {
		t.Error("pause not sent")
	}
	if h.c.Current() != PrintProcess {
		t.Errorf("expected PrintProcess, got %v", h.c.Current())
	}

	h.c.PauseShow(true)
	if !h.d.drew(txtResume) {
		t.Error("resume button not drawn")
	}

	h.selectItem(2)
	h.c.HandleInput(InputRotateRight)
	h.c.HandleInput(InputClick)
	if h.p.did(ActStop) {
		t.Error("stop sent after cancel")
	}
}

func TestPIDResults(t *testing.T) {
	tests := []struct {
		result  PIDResult
		text    string
		buttons int
	}{
		{PIDExtruderStart, txtPIDHotend, 0},
		{PIDBedStart, txtPIDBed, 0},
		{PIDDone, txtPIDDone, 1},
		{PIDBadExtruderNum, txtPIDBadExtruder, 1},
		{PIDTempTooHigh, txtPIDTooHigh, 1},
		{PIDTuningTimeout, txtPIDTimeout, 1},
	}
	for _, tt := range tests {
		h := newHarness(t, CapAll)
		h.open(Control)
		h.open(AdvSet)
		h.c.PIDTuningResult(tt.result)
		if h.c.Current() != PidProcess {
			t.Fatalf("%d: expected PidProcess, got %v", tt.result, h.c.Current())
		}
		if !h.d.drew(tt.text) {
			t.Errorf("%d: %q not drawn", tt.result, tt.text)
		}
		if h.c.popup.buttons != tt.buttons {
			t.Errorf("%d: %d buttons, want %d", tt.result, h.c.popup.buttons, tt.buttons)
		}
		h.c.HandleInput(InputClick)
		want := PidProcess
		if tt.buttons > 0 {
			want = AdvSet
		}
		if h.c.Current() != want {
			t.Errorf("%d: after click %v, want %v", tt.result, h.c.Current(), want)
		}
	}
}

func TestMediaRemovedLeavesFileList(t *testing.T) {
	h := newHarness(t, CapAll)
	h.open(SelectFile)
	h.c.MediaChanged(true)
	if h.c.Current() != SelectFile {
		t.Fatal("insert left the file list")
	}
	h.c.MediaChanged(false)
	if h.c.Current() != MainMenu {
		t.Errorf("expected MainMenu, got %v", h.c.Current())
	}
}

func TestWaitForUserAndTemperatureAlert(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.WaitForUser("Load PLA")
	if h.c.Current() != WaitResponse || !h.d.drew("Load PLA") {
		t.Fatalf("wait popup not shown: %v", h.c.Current())
	}
	h.c.HandleInput(InputClick)
	if !h.p.did(ActUserContinue) {
		t.Error("continue not sent")
	}

	h.p.actions = nil
	h.c.TemperatureAlert(true)
	if !h.d.drew(txtTempTooHigh) {
		t.Error("alert text not drawn")
	}
	h.c.HandleInput(InputClick)
	if h.p.did(ActUserContinue) {
		t.Error("alert acknowledgment sent continue")
	}
}

func TestStatusAndRebooting(t *testing.T) {
	h := newHarness(t, CapAll)
	h.c.StatusChanged("Ready.")
	if h.c.StatusText() != "Ready." || !h.d.drew("Ready.") {
		t.Error("status not shown")
	}
	h.c.Rebooting()
	h.c.HandleInput(InputClick)
	if h.c.Current() != MainMenu {
		t.Errorf("input handled while rebooting: %v", h.c.Current())
	}
	if !h.d.drew(txtRebooting) {
		t.Error("reboot screen not drawn")
	}
}
