package testsupport

import (
	"os"
	"testing"

	"github.com/gofrs/flock"
)

// JobLock stands in for the job-queue tool holding a job file's lock.
type JobLock struct {
	t    testing.TB
	lock *flock.Flock
}

// HoldLock takes the exclusive lock on path through its own handle and
// releases it when the test ends, unless Release was called first.
func HoldLock(t testing.TB, path string) *JobLock {
	t.Helper()
	lock := flock.New(path, flock.SetFlag(os.O_RDONLY))
	ok, err := lock.TryLock()
	if err != nil {
		t.Fatalf("lock %s: %v", path, err)
	}
	if !ok {
		t.Fatalf("lock %s: already held", path)
	}
	jl := &JobLock{t: t, lock: lock}
	t.Cleanup(func() { _ = lock.Unlock() })
	return jl
}

// Release drops the lock, as a finished job would.
func (l *JobLock) Release() {
	l.t.Helper()
	if err := l.lock.Unlock(); err != nil {
		l.t.Fatalf("unlock %s: %v", l.lock.Path(), err)
	}
}
