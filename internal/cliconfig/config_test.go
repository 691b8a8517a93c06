package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing target", func(c *Config) { c.TargetAddr = "" }, "target address"},
		{"zero rate", func(c *Config) { c.FrameRate = 0 }, "frame rate"},
		{"zero frame size", func(c *Config) { c.FrameSize = 0 }, "frame size"},
		{"frame larger than buffer", func(c *Config) { c.FrameSize = c.BufferSize + 1 }, "exceeds buffer size"},
		{"zero pool capacity", func(c *Config) { c.PoolCapacity = 0 }, "pool capacity"},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }, "duration"},
		{"negative count", func(c *Config) { c.Count = -1 }, "count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileInputSkipsFrameSizeCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "/tmp/frames.bin"
	cfg.FrameSize = cfg.BufferSize + 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("file input should not enforce frame/buffer ratio: %v", err)
	}
}

func TestConfigSetterRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetAddr = "10.0.0.1:5004" // as if set by flag
	cfg.FrameRate = 60

	s := newConfigSetter(map[string]bool{"target": true, "rate": true})

	s.setString("target", "192.168.1.1:5004", &cfg.TargetAddr)
	s.setInt("rate", 15, &cfg.FrameRate)
	s.setInt("frame-size", 4096, &cfg.FrameSize)

	if cfg.TargetAddr != "10.0.0.1:5004" {
		t.Errorf("flag-set target overridden: %s", cfg.TargetAddr)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("flag-set rate overridden: %d", cfg.FrameRate)
	}
	if cfg.FrameSize != 4096 {
		t.Errorf("unset frame-size not applied: %d", cfg.FrameSize)
	}
}

func TestConfigSetterIgnoresEmptyAndNonPositive(t *testing.T) {
	cfg := DefaultConfig()
	orig := cfg

	s := newConfigSetter(map[string]bool{})
	s.setString("target", "", &cfg.TargetAddr)
	s.setInt("rate", 0, &cfg.FrameRate)
	s.setInt("frame-size", -5, &cfg.FrameSize)

	if cfg != orig {
		t.Errorf("empty values mutated config: %+v", cfg)
	}
}

func TestSetDuration(t *testing.T) {
	var d time.Duration
	s := newConfigSetter(map[string]bool{})

	if err := s.setDuration("write-timeout", "250ms", &d); err != nil {
		t.Fatalf("setDuration: %v", err)
	}
	if d != 250*time.Millisecond {
		t.Errorf("got %v, want 250ms", d)
	}

	if err := s.setDuration("write-timeout", "not-a-duration", &d); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("FRAMECAST_TARGET_ADDR", "env-host:6000")
	t.Setenv("FRAMECAST_FRAME_RATE", "24")
	t.Setenv("FRAMECAST_WRITE_TIMEOUT", "3ms")
	t.Setenv("FRAMECAST_VERBOSE", "1")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.TargetAddr != "env-host:6000" {
		t.Errorf("target: %s", cfg.TargetAddr)
	}
	if cfg.FrameRate != 24 {
		t.Errorf("rate: %d", cfg.FrameRate)
	}
	if cfg.WriteTimeout != 3*time.Millisecond {
		t.Errorf("write timeout: %v", cfg.WriteTimeout)
	}
	if !cfg.Verbose {
		t.Error("verbose not applied")
	}
}

func TestApplyEnvConfigFlagWins(t *testing.T) {
	t.Setenv("FRAMECAST_TARGET_ADDR", "env-host:6000")

	cfg := DefaultConfig()
	cfg.TargetAddr = "flag-host:7000"
	if err := ApplyEnvConfig(&cfg, map[string]bool{"target": true}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.TargetAddr != "flag-host:7000" {
		t.Errorf("env overrode explicit flag: %s", cfg.TargetAddr)
	}
}

func TestApplyEnvConfigBadValue(t *testing.T) {
	t.Setenv("FRAMECAST_FRAME_RATE", "thirty")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Error("expected error for malformed FRAMECAST_FRAME_RATE")
	}
}
