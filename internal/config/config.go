package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// JobDirEnv names the environment variable shared with the job-queue tool.
const JobDirEnv = "NQDIR"

// ErrEmptyJobDir reports a job directory variable that is set to "".
var ErrEmptyJobDir = errors.New("job directory is empty")

// Paths contains directory configuration.
type Paths struct {
	JobDir string `toml:"job_dir"`
}

// Follow contains tailing behaviour.
type Follow struct {
	WaitMode              string `toml:"wait_mode"`
	PollIntervalMillis    int    `toml:"poll_interval_ms"`
	RecheckIntervalMillis int    `toml:"recheck_interval_ms"`
	ChunkSize             int    `toml:"chunk_size"`
	LockMethod            string `toml:"lock_method"`
	Marker                string `toml:"marker"`
}

// Logging contains configuration for diagnostic output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for fq.
//
// Configuration sections:
//   - Paths: the job directory (NQDIR overrides it)
//   - Follow: wait strategy, intervals, read chunk size, lock probe backend
//   - Logging: diagnostic log format, level, and optional log file
type Config struct {
	Paths   Paths   `toml:"paths"`
	Follow  Follow  `toml:"follow"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/fq/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults and environment overrides still apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("fq.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// PollInterval returns the poll-wait sleep between size checks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Follow.PollIntervalMillis) * time.Millisecond
}

// RecheckInterval returns the longest an event-wait suspends without a
// notification before the caller re-checks the lock.
func (c *Config) RecheckInterval() time.Duration {
	return time.Duration(c.Follow.RecheckIntervalMillis) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
