package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFollow()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	// NQDIR wins over the file. Set but empty names no directory at all.
	if value, ok := os.LookupEnv(JobDirEnv); ok {
		if value == "" {
			return fmt.Errorf("%s: %w", JobDirEnv, ErrEmptyJobDir)
		}
		c.Paths.JobDir = value
	}
	if strings.TrimSpace(c.Paths.JobDir) == "" {
		c.Paths.JobDir = defaultJobDir
	}
	var err error
	if c.Paths.JobDir, err = expandPath(c.Paths.JobDir); err != nil {
		return fmt.Errorf("paths.job_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFollow() {
	c.Follow.WaitMode = strings.ToLower(strings.TrimSpace(c.Follow.WaitMode))
	if c.Follow.WaitMode == "" {
		c.Follow.WaitMode = defaultWaitMode
	}
	c.Follow.LockMethod = strings.ToLower(strings.TrimSpace(c.Follow.LockMethod))
	if c.Follow.LockMethod == "" {
		c.Follow.LockMethod = defaultLockMethod
	}
	if c.Follow.PollIntervalMillis == 0 {
		c.Follow.PollIntervalMillis = defaultPollIntervalMillis
	}
	if c.Follow.RecheckIntervalMillis == 0 {
		c.Follow.RecheckIntervalMillis = defaultRecheckIntervalMillis
	}
	if c.Follow.ChunkSize == 0 {
		c.Follow.ChunkSize = defaultChunkSize
	}
	if c.Follow.Marker == "" {
		c.Follow.Marker = defaultMarker
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
