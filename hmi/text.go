package hmi

// English UI strings
const (
	txtBack            = "Back"
	txtMainMenu        = "Main Menu"
	txtPrint           = "Print"
	txtPrepare         = "Prepare"
	txtControl         = "Control"
	txtInfo            = "Info"
	txtSelectFile      = "Select File"
	txtPrinting        = "Printing..."
	txtPaused          = "Paused"
	txtPrintDone       = "Print Done"
	txtMove            = "Move"
	txtMoveX           = "Move X"
	txtMoveY           = "Move Y"
	txtMoveZ           = "Move Z"
	txtExtruder        = "Extruder"
	txtAutoHome        = "Auto Home"
	txtDisableSteppers = "Disable Steppers"
	txtManualLev       = "Bed Tramming"
	txtManualMesh      = "Mesh Leveling"
	txtAutoLevel       = "Auto Leveling"
	txtZOffset         = "Z-Offset"
	txtPreheatPLA      = "Preheat PLA"
	txtPreheatABS      = "Preheat ABS"
	txtCooldown        = "Cooldown"
	txtFilament        = "Filament"
	txtChangeFilament  = "Change Filament"
	txtLoadFilament    = "Load Filament"
	txtUnloadFilament  = "Unload Filament"
	txtTemperature     = "Temperature"
	txtMotion          = "Motion"
	txtAdvanced        = "Advanced Settings"
	txtStore           = "Store Settings"
	txtRestore         = "Restore Settings"
	txtReset           = "Reset Settings"
	txtReboot          = "Reboot Printer"
	txtHotend          = "Hotend"
	txtBed             = "Bed"
	txtFan             = "Fan"
	txtPLASettings     = "PLA Settings"
	txtABSSettings     = "ABS Settings"
	txtMaxSpeed        = "Max Speed"
	txtMaxAccel        = "Max Acceleration"
	txtMaxJerk         = "Max Jerk"
	txtSteps           = "Steps/mm"
	txtSpeed           = "Print Speed"
	txtFlow            = "Print Flow"
	txtHomeOffsets     = "Home Offsets"
	txtProbeOffsets    = "Probe Offsets"
	txtParkPos         = "Park Position"
	txtRunout          = "Runout Sensor"
	txtBrightness      = "LCD Brightness"
	txtLoadLength      = "Load Length"
	txtUnloadLength    = "Unload Length"
	txtColors          = "Colors"
	txtDefaultColors   = "Restore Defaults"
	txtAccept          = "Accept"
	txtRed             = "Red"
	txtGreen           = "Green"
	txtBlue            = "Blue"
	txtHotendPID       = "Hotend PID"
	txtBedPID          = "Bed PID"
	txtTune            = "Tune"
	txtPause           = "Pause"
	txtResume          = "Resume"
	txtStop            = "Stop"
	txtConfirm         = "Confirm"
	txtCancel          = "Cancel"
	txtContinue        = "Continue"
	txtPurgeMore       = "Purge More"
	txtCornerFL        = "Front Left"
	txtCornerFR        = "Front Right"
	txtCornerBR        = "Back Right"
	txtCornerBL        = "Back Left"
	txtCenter          = "Center"
	txtMeshStart       = "Start"
	txtMeshNext        = "Next Point"
	txtMeshMoveZ       = "Move Z"
	txtMeshSave        = "Save Mesh"
	txtOn              = "ON"
	txtOff             = "OFF"
	txtElapsed         = "Elapsed"
	txtRemain          = "Remain"
	txtSize            = "Bed Size"
	txtFirmware        = "Firmware"
	txtContact         = "Contact"
	txtRebootConfirm   = "Reboot now?"
	txtRebooting       = "Rebooting..."

	txtHoming         = "Homing"
	txtPleaseWait     = "Please wait until done."
	txtLeveling       = "Leveling"
	txtPauseQuestion  = "Pause the print?"
	txtResumeQuestion = "Resume the print?"
	txtStopQuestion   = "Stop the print?"
	txtPurgeQuestion  = "Purge more filament?"
	txtRunoutTitle    = "Filament Runout"
	txtRunoutHint     = "Insert filament, then continue"
	txtNothingToDo    = "Nothing to do"
	txtNoMedia        = "No media inserted"
	txtNotPrinting    = "No print running"
	txtColdExtrude    = "Nozzle is too cold"
	txtColdHint       = "Preheat the hotend first"
	txtTempTooHigh    = "Nozzle is too hot!"
	txtTempTooLow     = "Nozzle temperature too low"
	txtWaiting        = "Waiting for user"
	txtPIDTitle       = "PID Autotune"
	txtPIDHotend      = "Hotend autotune running"
	txtPIDBed         = "Bed autotune running"
	txtPIDBadExtruder = "Bad extruder number"
	txtPIDTooHigh     = "Temperature too high"
	txtPIDTimeout     = "Autotune timed out"
	txtPIDDone        = "Autotune finished"
	txtPrinterHalted  = "Printer halted"
	txtPleaseReset    = "Please reset the printer"
	txtHeating        = "Heating..."
	txtSettingsSaved  = "Settings stored"
	txtSettingsLoaded = "Settings restored"
	txtSettingsReset  = "Settings reset"
	txtSettingsFailed = "Settings error"
	txtCommandFailed  = "Command failed"
)
