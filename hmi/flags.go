package hmi

// Language selects the UI string table
type Language uint8

const (
	LanguageEnglish Language = 0
	LanguageChinese Language = 123
)

// Flag is one bit of session state
type Flag uint16

const (
	FlagPause          Flag = 1 << iota // print is paused
	FlagPauseAction                     // pause requested from the UI, waiting for the printer
	FlagPrintFinish                     // last print ended
	FlagSelect                          // two-button popup: right button selected
	FlagHome                            // homing in progress
	FlagHeat                            // heating in progress
	FlagETempTooLow                     // extrusion refused, hotend cold
	FlagLevelingOffset                  // Z offset edit applies to leveling
)

// Flags holds cross-cutting session state. It lives as long as the controller.
type Flags struct {
	Language      Language
	FeedspeedAxis Axis
	AccAxis       Axis
	JerkAxis      Axis
	StepAxis      Axis
	bits          Flag
}

// Has reports whether f is set
func (s *Flags) Has(f Flag) bool {
	return s.bits&f != 0
}

// Set sets or clears f
func (s *Flags) Set(f Flag, on bool) {
	if on {
		s.bits |= f
	} else {
		s.bits &^= f
	}
}

// Reset clears all bits and axis selections, keeping the language
func (s *Flags) Reset() {
	*s = Flags{Language: s.Language}
}
