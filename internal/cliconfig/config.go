// Package cliconfig holds CLI configuration loading for the framecast
// command: defaults, TOML config file, FRAMECAST_* environment
// variables, and flag precedence handling.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTargetAddr is the default UDP destination for the demo sender.
const DefaultTargetAddr = "127.0.0.1:5004"

// Config holds CLI configuration for framecast.
type Config struct {
	TargetAddr string
	InputPath  string

	FrameRate int
	FrameSize int

	PoolCapacity int
	BufferSize   int
	MaxFragment  int
	NotifyBuffer int

	WriteTimeout       time.Duration
	BusyBackoffInitial time.Duration
	BusyBackoffMax     time.Duration

	Duration time.Duration
	Count    int

	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TargetAddr:         DefaultTargetAddr,
		FrameRate:          30,
		FrameSize:          16 << 10, // 16KB synthetic frames
		PoolCapacity:       4,
		BufferSize:         128 << 10,
		MaxFragment:        1380,
		NotifyBuffer:       64,
		WriteTimeout:       5 * time.Millisecond,
		BusyBackoffInitial: 500 * time.Microsecond,
		BusyBackoffMax:     20 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TargetAddr == "" {
		return fmt.Errorf("target address is required")
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive")
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("frame size must be positive")
	}
	if c.InputPath == "" && c.FrameSize > c.BufferSize {
		return fmt.Errorf("frame size %d exceeds buffer size %d", c.FrameSize, c.BufferSize)
	}
	if c.PoolCapacity <= 0 {
		return fmt.Errorf("pool capacity must be positive")
	}
	if c.MaxFragment <= 0 {
		return fmt.Errorf("max fragment must be positive")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}
	return nil
}

var logger zerolog.Logger

func init() {
	logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
