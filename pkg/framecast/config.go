package framecast

import (
	"fmt"
	"time"

	"github.com/vtx-labs/framecast/internal/domain"
	"github.com/vtx-labs/framecast/internal/wire"
)

// Default configuration values.
const (
	// DefaultPoolCapacity is the default number of pre-allocated buffers.
	DefaultPoolCapacity = 4

	// DefaultBufferSize is the default capacity of each buffer, sized
	// for a compressed HD video frame.
	DefaultBufferSize = 128 << 10 // 128 KiB

	// DefaultMaxFragment is the default payload bytes per fragment,
	// chosen so header plus payload fits a common 1500-byte MTU path.
	DefaultMaxFragment = 1400 - wire.HeaderSize

	// DefaultNotifyBuffer is the default capacity of the status event
	// channel between engine and notifier.
	DefaultNotifyBuffer = 64
)

// Config holds the configuration for a Sender.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// PoolCapacity is the fixed number of pre-allocated buffers. Queue
	// depth can never exceed it; memory is bounded at construction.
	PoolCapacity int

	// BufferSize is the capacity of each buffer, the largest encoded
	// frame the sender accepts.
	BufferSize int

	// MaxFragment is the most payload bytes carried per fragment,
	// excluding the wire header.
	MaxFragment int

	// NotifyBuffer is the capacity of the status event channel. When it
	// is full (pathologically slow listener), terminal processing
	// blocks rather than dropping events.
	NotifyBuffer int

	// BusyBackoffInitial and BusyBackoffMax bound the engine's retry
	// wait when the transport reports Busy. Zero means defaults.
	BusyBackoffInitial time.Duration
	BusyBackoffMax     time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		PoolCapacity: DefaultPoolCapacity,
		BufferSize:   DefaultBufferSize,
		MaxFragment:  DefaultMaxFragment,
		NotifyBuffer: DefaultNotifyBuffer,
	}
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.PoolCapacity == 0 {
		c.PoolCapacity = DefaultPoolCapacity
	}
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.MaxFragment == 0 {
		c.MaxFragment = DefaultMaxFragment
	}
	if c.NotifyBuffer == 0 {
		c.NotifyBuffer = DefaultNotifyBuffer
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.PoolCapacity <= 0 {
		return fmt.Errorf("%w: pool capacity must be positive", domain.ErrInvalidConfig)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("%w: buffer size must be positive", domain.ErrInvalidConfig)
	}
	if c.MaxFragment <= 0 {
		return fmt.Errorf("%w: max fragment must be positive", domain.ErrInvalidConfig)
	}
	if c.NotifyBuffer <= 0 {
		return fmt.Errorf("%w: notify buffer must be positive", domain.ErrInvalidConfig)
	}
	if c.BusyBackoffInitial < 0 || c.BusyBackoffMax < 0 {
		return fmt.Errorf("%w: backoff durations must not be negative", domain.ErrInvalidConfig)
	}
	if n := wire.FragmentCount(c.BufferSize, c.MaxFragment); n > wire.MaxFragments {
		return fmt.Errorf("%w: buffer size %d needs %d fragments, max %d",
			domain.ErrInvalidConfig, c.BufferSize, n, wire.MaxFragments)
	}
	return nil
}
