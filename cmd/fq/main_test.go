package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fq/internal/config"
	"fq/internal/testsupport"
)

type result struct {
	stdout string
	stderr string
	code   int
}

func execute(t *testing.T, ctx context.Context, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(ctx, args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// setupJobs points NQDIR at a fresh directory holding three finished jobs.
func setupJobs(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Setenv(config.JobDirEnv, dir)
	testsupport.WriteFile(t, filepath.Join(dir, ",a1"), "alpha\nbeta\n")
	testsupport.WriteFile(t, filepath.Join(dir, ",b2"), "second\n")
	testsupport.WriteFile(t, filepath.Join(dir, ",c3"), "third")
	testsupport.WriteFile(t, filepath.Join(dir, "unrelated"), "ignored\n")
	return dir
}

func writePollConfig(t *testing.T) string {
	t.Helper()
	return testsupport.WriteConfigFile(t, testsupport.NewConfig(t))
}

// appendLine writes to a job file from a goroutine standing in for the job.
func appendLine(path, line string) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(line)
	_ = f.Close()
}

func TestDefaultFollowsLastJobWhenNoneRunning(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background())
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	if res.stdout != "==> ,c3\nthird" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestShowAllFollowsEveryJob(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background(), "-a")
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	want := "==> ,a1\nalpha\nbeta\n==> ,b2\nsecond\n==> ,c3\nthird"
	if res.stdout != want {
		t.Fatalf("unexpected output: got %q want %q", res.stdout, want)
	}
}

func TestQuietCombinedFlags(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background(), "-qa")
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	want := "==> ,a1 alpha\n==> ,b2 second\n==> ,c3 third\n"
	if res.stdout != want {
		t.Fatalf("unexpected output: got %q want %q", res.stdout, want)
	}
}

func TestExplicitJobIDs(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background(), ",b2", ",missing", ",a1")
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	if res.stdout != "==> ,a1\nalpha\nbeta\n" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestFlagsEndAtFirstJobID(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background(), ",a1", "-a")
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("expected -a after a job ID to be treated as a job ID, got %q", res.stdout)
	}
}

func TestFollowsRunningJobUntilReleased(t *testing.T) {
	dir := setupJobs(t)
	cfgPath := writePollConfig(t)
	path := filepath.Join(dir, ",b2")
	lock := testsupport.HoldLock(t, path)

	go func() {
		time.Sleep(100 * time.Millisecond)
		appendLine(path, "more\n")
		time.Sleep(100 * time.Millisecond)
		lock.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := execute(t, ctx, "-c", cfgPath)
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	if res.stdout != "==> ,b2\nsecond\nmore\n" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestInterruptedRunExitsSilently(t *testing.T) {
	dir := setupJobs(t)
	cfgPath := writePollConfig(t)
	testsupport.HoldLock(t, filepath.Join(dir, ",a1"))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)
	res := execute(t, ctx, "-c", cfgPath, "--wait", "poll")
	if res.code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, res.code)
	}
	if res.stderr != "" {
		t.Fatalf("expected no error output, got %q", res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "==> ,a1\nalpha\nbeta\n") {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestUnknownFlagPrintsUsage(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background(), "-x")
	if res.code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, res.code)
	}
	if !strings.Contains(res.stderr, usageLine) {
		t.Fatalf("expected usage on stderr, got %q", res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("expected no stdout, got %q", res.stdout)
	}
}

func TestInvalidWaitModeIsUsageError(t *testing.T) {
	setupJobs(t)

	res := execute(t, context.Background(), "--wait", "spin")
	if res.code != exitFailure {
		t.Fatalf("expected exit code %d, got %d", exitFailure, res.code)
	}
	if !strings.Contains(res.stderr, "--wait") {
		t.Fatalf("expected wait error, got %q", res.stderr)
	}
}

func TestConfigurationErrorsExit111(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) []string
	}{
		{
			name: "missing job directory",
			setup: func(t *testing.T) []string {
				t.Setenv(config.JobDirEnv, filepath.Join(t.TempDir(), "absent"))
				return nil
			},
		},
		{
			name: "job directory is a file",
			setup: func(t *testing.T) []string {
				file := filepath.Join(t.TempDir(), "file")
				testsupport.WriteFile(t, file, "")
				t.Setenv(config.JobDirEnv, file)
				return nil
			},
		},
		{
			name: "invalid config file",
			setup: func(t *testing.T) []string {
				t.Setenv(config.JobDirEnv, t.TempDir())
				path := filepath.Join(t.TempDir(), "fq.toml")
				testsupport.WriteFile(t, path, "[follow]\nchunk_size = \"big\"\n")
				return []string{"-c", path}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			args := tc.setup(t)
			res := execute(t, context.Background(), args...)
			if res.code != exitConfig {
				t.Fatalf("expected exit code %d, got %d (%s)", exitConfig, res.code, res.stderr)
			}
			if res.stderr == "" {
				t.Fatal("expected an error message")
			}
		})
	}
}

func TestEmptyJobDirectorySucceeds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.JobDirEnv, t.TempDir())

	res := execute(t, context.Background())
	if res.code != exitOK || res.stdout != "" {
		t.Fatalf("expected silent success, got code %d output %q", res.code, res.stdout)
	}
}

func TestStatusListsJobs(t *testing.T) {
	dir := setupJobs(t)
	testsupport.HoldLock(t, filepath.Join(dir, ",b2"))

	res := execute(t, context.Background(), "--status", ",a1", ",b2", ",gone")
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	lines := strings.Split(res.stdout, "\n")
	find := func(name string) string {
		for _, line := range lines {
			if strings.Contains(line, name) {
				return line
			}
		}
		t.Fatalf("no row for %s in %q", name, res.stdout)
		return ""
	}
	if row := find(",a1"); !strings.Contains(row, stateDone) || !strings.Contains(row, "11 B") {
		t.Fatalf("unexpected row for ,a1: %q", row)
	}
	if row := find(",b2"); !strings.Contains(row, stateRunning) {
		t.Fatalf("unexpected row for ,b2: %q", row)
	}
	if row := find(",gone"); !strings.Contains(row, stateMissing) {
		t.Fatalf("unexpected row for ,gone: %q", row)
	}
	if strings.Contains(res.stdout, "\x1b[") {
		t.Fatalf("expected no colour codes when not writing to a terminal: %q", res.stdout)
	}
}

func TestStatusWithoutJobs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.JobDirEnv, t.TempDir())

	res := execute(t, context.Background(), "-s")
	if res.code != exitOK || res.stdout != "No jobs found\n" {
		t.Fatalf("unexpected result: code %d output %q", res.code, res.stdout)
	}
}

func TestConfigFileSuppliesJobDirectoryAndStrategy(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	testsupport.UnsetEnv(t, config.JobDirEnv)
	cfg := testsupport.NewConfig(t,
		testsupport.WithWaitMode(config.WaitModeEvent),
		testsupport.WithLockMethod(config.LockMethodPath),
		testsupport.WithChunkSize(4),
	)
	path := filepath.Join(cfg.Paths.JobDir, ",a1")
	testsupport.WriteFile(t, path, "one\n")
	lock := testsupport.HoldLock(t, path)

	go func() {
		time.Sleep(100 * time.Millisecond)
		appendLine(path, "two\n")
		time.Sleep(100 * time.Millisecond)
		lock.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res := execute(t, ctx, "-c", testsupport.WriteConfigFile(t, cfg))
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	if res.stdout != "==> ,a1\none\ntwo\n" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestDiagnosticsGoToConfiguredLogFile(t *testing.T) {
	setupJobs(t)
	cfg := testsupport.NewConfig(t)
	cfg.Logging.File = filepath.Join(t.TempDir(), "fq.log")

	res := execute(t, context.Background(), "-v", "-c", testsupport.WriteConfigFile(t, cfg))
	if res.code != exitOK {
		t.Fatalf("unexpected exit code %d: %s", res.code, res.stderr)
	}
	if res.stdout != "==> ,c3\nthird" {
		t.Fatalf("expected only job output on stdout, got %q", res.stdout)
	}
	if res.stderr != "" {
		t.Fatalf("expected no diagnostics on stderr, got %q", res.stderr)
	}
	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "run finished") {
		t.Fatalf("expected debug summary in log file, got %q", content)
	}
}

func TestEmptyNQDIRIsConfigurationError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.JobDirEnv, "")

	res := execute(t, context.Background(), "-s")
	if res.code != exitConfig {
		t.Fatalf("expected exit code %d, got %d", exitConfig, res.code)
	}
	if !strings.Contains(res.stderr, config.JobDirEnv) {
		t.Fatalf("expected error naming %s, got %q", config.JobDirEnv, res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("expected no stdout, got %q", res.stdout)
	}
}

func TestHelpFlagsPrintUsage(t *testing.T) {
	setupJobs(t)

	for _, flag := range []string{"-h", "--help", "-ah"} {
		t.Run(flag, func(t *testing.T) {
			res := execute(t, context.Background(), flag)
			if res.code != exitFailure {
				t.Fatalf("expected exit code %d, got %d", exitFailure, res.code)
			}
			if strings.TrimSpace(res.stderr) != usageLine {
				t.Fatalf("expected only the usage line on stderr, got %q", res.stderr)
			}
			if res.stdout != "" {
				t.Fatalf("expected no stdout, got %q", res.stdout)
			}
		})
	}
}
