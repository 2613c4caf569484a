package testsupport

import (
	"context"
	"errors"
	"os"
	"sync"

	"fq/internal/waiter"
)

// ErrTooManyWaits ends a follow that never drains under a StepStrategy.
var ErrTooManyWaits = errors.New("step strategy: too many waits")

const maxStepWaits = 10000

// StepStrategy is a waiter.Strategy that runs Step on each wait instead of
// blocking, so tests can change a file between loop iterations
// deterministically.
type StepStrategy struct {
	// Step receives the 1-based wait number and the follower's cursor.
	Step func(call int, cursor int64)

	mu      sync.Mutex
	calls   int
	watched []string
	closed  int
}

// Name identifies the strategy in logs.
func (s *StepStrategy) Name() string { return "step" }

// Watch records the watched path.
func (s *StepStrategy) Watch(f *os.File) (waiter.Waiter, error) {
	s.mu.Lock()
	s.watched = append(s.watched, f.Name())
	s.mu.Unlock()
	return &stepWaiter{strategy: s}, nil
}

// Calls returns how many waits have run.
func (s *StepStrategy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Watched returns the paths passed to Watch, in order.
func (s *StepStrategy) Watched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.watched...)
}

// Closed returns how many waiters have been closed.
func (s *StepStrategy) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type stepWaiter struct {
	strategy *StepStrategy
}

func (w *stepWaiter) Wait(ctx context.Context, cursor int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := w.strategy
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	if call > maxStepWaits {
		return ErrTooManyWaits
	}
	if s.Step != nil {
		s.Step(call, cursor)
	}
	return nil
}

func (w *stepWaiter) Close() error {
	w.strategy.mu.Lock()
	w.strategy.closed++
	w.strategy.mu.Unlock()
	return nil
}
