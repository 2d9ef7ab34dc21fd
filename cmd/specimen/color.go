package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/specimen-dev/specimen/report"
)

// colorMode controls when diff output is styled.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

var _ pflag.Value = (*colorMode)(nil)

var colorFlag = colorAuto

func (m *colorMode) String() string {
	return string(*m)
}

func (m *colorMode) Set(value string) error {
	switch colorMode(value) {
	case colorAuto, colorAlways, colorNever:
		*m = colorMode(value)
		return nil
	}
	return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", value)
}

func (m *colorMode) Type() string {
	return "mode"
}

func init() {
	rootCmd.PersistentFlags().Var(&colorFlag, "color", "When to color diffs (auto, always, never)")
}

// colorEnabled resolves the --color flag against the terminal.
func colorEnabled() bool {
	switch colorFlag {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	return report.ColorEnabled()
}
