package waiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"fq/internal/logging"
)

const (
	defaultRecheckInterval = time.Second
	watchErrorBudget       = 5
)

var errWatcherClosed = errors.New("watcher closed")

// Event wakes on filesystem change notifications for the followed path.
//
// A lock release produces no notification of its own, so a wait also ends
// after the recheck interval and the caller re-probes the lock.
type Event struct {
	recheck  time.Duration
	fallback Strategy
	logger   *slog.Logger
}

// NewEvent returns a notification strategy. fallback, when non-nil, serves
// files that cannot be watched.
func NewEvent(recheck time.Duration, fallback Strategy, logger *slog.Logger) *Event {
	if recheck <= 0 {
		recheck = defaultRecheckInterval
	}
	return &Event{
		recheck:  recheck,
		fallback: fallback,
		logger:   logging.NewComponentLogger(logger, "waiter"),
	}
}

// Name identifies the strategy in logs.
func (e *Event) Name() string { return "event" }

// Watch subscribes to write notifications on f's path.
func (e *Event) Watch(f *os.File) (Waiter, error) {
	w, err := e.subscribe(f.Name())
	if err == nil {
		return w, nil
	}
	if e.fallback == nil {
		return nil, err
	}
	e.logger.Warn("change notifications unavailable; falling back",
		logging.Job(f.Name()),
		slog.String("fallback", e.fallback.Name()),
		logging.Error(err),
	)
	return e.fallback.Watch(f)
}

func (e *Event) subscribe(path string) (*eventWaiter, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &eventWaiter{
		watcher: watcher,
		path:    path,
		recheck: e.recheck,
		logger:  e.logger,
	}, nil
}

type eventWaiter struct {
	watcher *fsnotify.Watcher
	path    string
	recheck time.Duration
	logger  *slog.Logger
}

func (w *eventWaiter) Wait(ctx context.Context, _ int64) error {
	timer := time.NewTimer(w.recheck)
	defer timer.Stop()

	errRetry := watchErrorBudget
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-w.watcher.Events:
			if !ok {
				return errWatcherClosed
			}
			w.drain()
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errWatcherClosed
			}
			w.logger.Debug("watch error", logging.Job(w.path), slog.Int("retries_left", errRetry), logging.Error(err))
			if errRetry == 0 {
				// Re-check rather than fail: the follower's own stat is authoritative.
				return nil
			}
			errRetry--
		case <-timer.C:
			return nil
		}
	}
}

// drain discards notifications that are already queued so a burst of writes
// costs one wake.
func (w *eventWaiter) drain() {
	for {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *eventWaiter) Close() error {
	return w.watcher.Close()
}
