package specimen

import (
	"github.com/specimen-dev/specimen/internal/validation"
)

// EnvVar overrides the configured update mode for one test run.
const EnvVar = "SPECIMEN_UPDATE"

// Mode selects what happens when an assertion observes a mismatch.
type Mode string

const (
	// ModeAuto fails the test and records the proposed value for later
	// review: inline mismatches append to the pending journal, file
	// mismatches write a .snap.new candidate.
	ModeAuto Mode = "auto"

	// ModeNew records proposed values the same way ModeAuto does.
	ModeNew Mode = "new"

	// ModeAlways applies the proposed value immediately and lets the
	// test pass.
	ModeAlways Mode = "always"

	// ModeNo fails the test and writes nothing.
	ModeNo Mode = "no"
)

// ValidModes returns all valid update modes.
func ValidModes() []Mode {
	return []Mode{ModeAuto, ModeNew, ModeAlways, ModeNo}
}

// IsValid reports whether the mode is one of the valid modes.
func (m Mode) IsValid() bool {
	for _, valid := range ValidModes() {
		if m == valid {
			return true
		}
	}
	return false
}

// ParseMode validates a mode value from the environment or a config file.
func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidMode, mode, ValidModes())
	}
	return mode, nil
}

// records reports whether a mismatch leaves a pending update behind.
func (m Mode) records() bool {
	return m == ModeAuto || m == ModeNew
}

// applies reports whether a mismatch is written through immediately.
func (m Mode) applies() bool {
	return m == ModeAlways
}
