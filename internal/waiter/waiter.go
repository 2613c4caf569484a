package waiter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fq/internal/config"
	"fq/internal/lockprobe"
)

// Strategy creates a Waiter bound to one followed file.
type Strategy interface {
	Watch(f *os.File) (Waiter, error)
	Name() string
}

// Waiter blocks until the file it watches may have changed. cursor is the
// caller's read offset at the time of the call.
type Waiter interface {
	Wait(ctx context.Context, cursor int64) error
	Close() error
}

// Options configures New.
type Options struct {
	Mode            string
	PollInterval    time.Duration
	RecheckInterval time.Duration
	Prober          lockprobe.Prober
	Logger          *slog.Logger
}

// New returns the strategy for a configured wait mode. The event strategy
// falls back to polling for files it cannot watch.
func New(opts Options) (Strategy, error) {
	poll := NewPoll(opts.PollInterval, opts.Prober)
	switch opts.Mode {
	case config.WaitModePoll:
		return poll, nil
	case config.WaitModeEvent, "":
		return NewEvent(opts.RecheckInterval, poll, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported wait mode %q", opts.Mode)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
