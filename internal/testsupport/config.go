package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"fq/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose job directory is a fresh temp directory,
// polling every 10ms. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.JobDir = filepath.Join(base, "jobs")
	cfgVal.Follow.WaitMode = config.WaitModePoll
	cfgVal.Follow.PollIntervalMillis = 10
	cfgVal.Follow.RecheckIntervalMillis = 50

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	MkdirAll(t, cfgVal.Paths.JobDir)
	return builder.cfg
}

// WithWaitMode overrides the wait strategy on the test config.
func WithWaitMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Follow.WaitMode = mode
	}
}

// WithLockMethod overrides the lock probe backend on the test config.
func WithLockMethod(method string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Follow.LockMethod = method
	}
}

// WithChunkSize overrides the read chunk size on the test config.
func WithChunkSize(size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Follow.ChunkSize = size
	}
}

// WriteConfigFile encodes cfg as TOML into the test's temp directory and
// returns the file path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fq.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
