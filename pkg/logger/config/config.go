package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
)

var (
	ErrInvalidLevel = errors.New("invalid log level")
)

// Configuration logger config read from LOG_LEVEL and LOG_TIME_FORMAT.
type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return fmt.Errorf("%w: %d, must be between %d and %d", ErrInvalidLevel, c.Level, DEBUG_LEVEL, ERROR_LEVEL)
	}
	if c.TimeFormat == "" {
		return errors.New("log time format is empty")
	}
	return nil
}

func Default() Configuration {
	return Configuration{
		Level:      INFO_LEVEL,
		TimeFormat: time.RFC3339Nano,
	}
}
