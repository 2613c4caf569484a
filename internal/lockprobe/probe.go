package lockprobe

import (
	"fmt"
	"log/slog"
	"os"

	"fq/internal/config"
	"fq/internal/logging"
)

// Prober reports whether another process holds the advisory lock on f.
type Prober interface {
	IsLocked(f *os.File) bool
}

// New returns the prober for a configured lock method.
func New(method string, logger *slog.Logger) (Prober, error) {
	logger = logging.NewComponentLogger(logger, "lockprobe")
	switch method {
	case config.LockMethodDescriptor, "":
		return &Descriptor{logger: logger}, nil
	case config.LockMethodPath:
		return &Path{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported lock method %q", method)
	}
}

// Func adapts a function to the Prober interface.
type Func func(f *os.File) bool

// IsLocked calls fn(f).
func (fn Func) IsLocked(f *os.File) bool {
	return fn(f)
}

func reportAmbiguous(logger *slog.Logger, f *os.File, err error) {
	if logger == nil {
		return
	}
	logger.Debug("lock probe failed; treating job as finished", logging.Job(f.Name()), logging.Error(err))
}
