package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ApplicationConfiguration contains settings of the command line tools.
type ApplicationConfiguration struct {
	// LogLevel is one of zap levels ("debug", "info", ...).
	LogLevel string `yaml:"LogLevel"`
	// LogPath is a file to write logs into, stderr is used if it's empty.
	LogPath string `yaml:"LogPath"`
}

// Validate checks the log level.
func (a ApplicationConfiguration) Validate() error {
	if a.LogLevel == "" {
		return nil
	}
	if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
		return fmt.Errorf("log setting: %w", err)
	}
	return nil
}
