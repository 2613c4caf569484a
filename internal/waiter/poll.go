package waiter

import (
	"context"
	"os"
	"time"

	"fq/internal/lockprobe"
)

const defaultPollInterval = 250 * time.Millisecond

// Poll re-checks the file's size on a fixed interval.
type Poll struct {
	interval time.Duration
	prober   lockprobe.Prober
}

// NewPoll returns a polling strategy. A nil prober means only growth or
// shrinkage ends a wait.
func NewPoll(interval time.Duration, prober lockprobe.Prober) *Poll {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poll{interval: interval, prober: prober}
}

// Name identifies the strategy in logs.
func (p *Poll) Name() string { return "poll" }

// Interval returns the sleep between checks.
func (p *Poll) Interval() time.Duration { return p.interval }

// Watch binds the strategy to f. Polling holds no resources.
func (p *Poll) Watch(f *os.File) (Waiter, error) {
	return &pollWaiter{file: f, interval: p.interval, prober: p.prober}, nil
}

type pollWaiter struct {
	file     *os.File
	interval time.Duration
	prober   lockprobe.Prober
}

func (w *pollWaiter) Wait(ctx context.Context, cursor int64) error {
	for {
		if err := sleep(ctx, w.interval); err != nil {
			return err
		}
		info, err := w.file.Stat()
		if err != nil {
			// Let the caller's own stat surface the error.
			return nil
		}
		if info.Size() != cursor {
			return nil
		}
		if w.prober != nil && !w.prober.IsLocked(w.file) {
			return nil
		}
	}
}

func (w *pollWaiter) Close() error { return nil }
