// Package config handles the logging setup of the emulator.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the logger shared by the emulator core and the
// frontend. Debug level wins over quiet so that -debug -q still traces.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
