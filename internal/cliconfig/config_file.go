package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	TargetAddr string `toml:"target_addr"`
	InputPath  string `toml:"input_path"`

	FrameRate int `toml:"frame_rate"`
	FrameSize int `toml:"frame_size"`

	PoolCapacity int `toml:"pool_capacity"`
	BufferSize   int `toml:"buffer_size"`
	MaxFragment  int `toml:"max_fragment"`
	NotifyBuffer int `toml:"notify_buffer"`

	WriteTimeout       string `toml:"write_timeout"`
	BusyBackoffInitial string `toml:"busy_backoff_initial"`
	BusyBackoffMax     string `toml:"busy_backoff_max"`

	Duration string `toml:"duration"`
	Count    int    `toml:"count"`

	Verbose *bool `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.framecast/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".framecast", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("target", fc.TargetAddr, &cfg.TargetAddr)
	s.setString("input", fc.InputPath, &cfg.InputPath)

	s.setInt("rate", fc.FrameRate, &cfg.FrameRate)
	s.setInt("frame-size", fc.FrameSize, &cfg.FrameSize)

	s.setInt("pool-capacity", fc.PoolCapacity, &cfg.PoolCapacity)
	s.setInt("buffer-size", fc.BufferSize, &cfg.BufferSize)
	s.setInt("max-fragment", fc.MaxFragment, &cfg.MaxFragment)
	s.setInt("notify-buffer", fc.NotifyBuffer, &cfg.NotifyBuffer)

	if err := s.setDuration("write-timeout", fc.WriteTimeout, &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("busy-backoff-initial", fc.BusyBackoffInitial, &cfg.BusyBackoffInitial); err != nil {
		return err
	}
	if err := s.setDuration("busy-backoff-max", fc.BusyBackoffMax, &cfg.BusyBackoffMax); err != nil {
		return err
	}
	if err := s.setDuration("duration", fc.Duration, &cfg.Duration); err != nil {
		return err
	}

	s.setInt("count", fc.Count, &cfg.Count)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
