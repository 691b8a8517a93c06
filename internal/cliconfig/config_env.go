package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FRAMECAST_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("target", os.Getenv("FRAMECAST_TARGET_ADDR"), &cfg.TargetAddr)
	s.setString("input", os.Getenv("FRAMECAST_INPUT_PATH"), &cfg.InputPath)

	if err := s.setIntFromString("rate", os.Getenv("FRAMECAST_FRAME_RATE"), &cfg.FrameRate); err != nil {
		return err
	}
	if err := s.setIntFromString("frame-size", os.Getenv("FRAMECAST_FRAME_SIZE"), &cfg.FrameSize); err != nil {
		return err
	}
	if err := s.setIntFromString("pool-capacity", os.Getenv("FRAMECAST_POOL_CAPACITY"), &cfg.PoolCapacity); err != nil {
		return err
	}
	if err := s.setIntFromString("buffer-size", os.Getenv("FRAMECAST_BUFFER_SIZE"), &cfg.BufferSize); err != nil {
		return err
	}
	if err := s.setIntFromString("max-fragment", os.Getenv("FRAMECAST_MAX_FRAGMENT"), &cfg.MaxFragment); err != nil {
		return err
	}
	if err := s.setIntFromString("notify-buffer", os.Getenv("FRAMECAST_NOTIFY_BUFFER"), &cfg.NotifyBuffer); err != nil {
		return err
	}

	if err := s.setDuration("write-timeout", os.Getenv("FRAMECAST_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("busy-backoff-initial", os.Getenv("FRAMECAST_BUSY_BACKOFF_INITIAL"), &cfg.BusyBackoffInitial); err != nil {
		return err
	}
	if err := s.setDuration("busy-backoff-max", os.Getenv("FRAMECAST_BUSY_BACKOFF_MAX"), &cfg.BusyBackoffMax); err != nil {
		return err
	}
	if err := s.setDuration("duration", os.Getenv("FRAMECAST_DURATION"), &cfg.Duration); err != nil {
		return err
	}

	if err := s.setIntFromString("count", os.Getenv("FRAMECAST_COUNT"), &cfg.Count); err != nil {
		return err
	}

	s.setBoolFromString("verbose", os.Getenv("FRAMECAST_VERBOSE"), &cfg.Verbose)

	return nil
}
