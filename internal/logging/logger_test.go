package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fq/internal/config"
	"fq/internal/logging"
)

func TestNewFromConfigDefaults(t *testing.T) {
	cfg := config.Default()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	if logger.Enabled(context.Background(), -4) {
		t.Fatal("expected debug disabled at default level")
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "follow")
	logger.Warn("job skipped", logging.Job(",a1"), logging.Error(errors.New("no such file")))

	line := buf.String()
	if !strings.Contains(line, " WARN follow: job skipped") {
		t.Fatalf("expected level and component prefix, got %q", line)
	}
	if !strings.Contains(line, "job=,a1") {
		t.Fatalf("expected job attr, got %q", line)
	}
	if !strings.Contains(line, `error="no such file"`) {
		t.Fatalf("expected quoted error attr, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information, got %q", line)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
}

func TestNewFromConfigAppendsToLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "info"
	cfg.Logging.File = filepath.Join(t.TempDir(), "nested", "fq.log")

	for _, job := range []string{",a1", ",b2"} {
		logger, err := logging.NewFromConfig(&cfg)
		if err != nil {
			t.Fatalf("NewFromConfig returned error: %v", err)
		}
		logging.NewComponentLogger(logger, "follow").Info("drained", logging.Job(job), logging.Error(errors.New("eof")))
	}

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected both runs appended, got %q", content)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, lines[1])
	}
	if record["msg"] != "drained" || record["level"] != "info" || record["job"] != ",b2" {
		t.Fatalf("unexpected record: %#v", record)
	}
	if record["component"] != "follow" || record["error"] != "eof" {
		t.Fatalf("unexpected attrs: %#v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key: %#v", record)
	}
}

func TestNewFromConfigRejectsUnwritableLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = t.TempDir()

	if _, err := logging.NewFromConfig(&cfg); err == nil {
		t.Fatal("expected error when the log file is a directory")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 8) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.NewComponentLogger(nil, "x").Error("dropped")
}
