package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFollow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFollow() error {
	switch c.Follow.WaitMode {
	case WaitModeEvent, WaitModePoll:
	default:
		return fmt.Errorf("follow.wait_mode: unsupported value %q (want %q or %q)", c.Follow.WaitMode, WaitModeEvent, WaitModePoll)
	}
	switch c.Follow.LockMethod {
	case LockMethodDescriptor, LockMethodPath:
	default:
		return fmt.Errorf("follow.lock_method: unsupported value %q (want %q or %q)", c.Follow.LockMethod, LockMethodDescriptor, LockMethodPath)
	}
	if c.Follow.PollIntervalMillis < 0 {
		return errors.New("follow.poll_interval_ms must be positive")
	}
	if c.Follow.RecheckIntervalMillis < 0 {
		return errors.New("follow.recheck_interval_ms must be positive")
	}
	if c.Follow.ChunkSize < 0 || c.Follow.ChunkSize > maxChunkSize {
		return fmt.Errorf("follow.chunk_size must be between 1 and %d", maxChunkSize)
	}
	if strings.ContainsAny(c.Follow.Marker, `/\`) {
		return fmt.Errorf("follow.marker %q must not contain path separators", c.Follow.Marker)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
