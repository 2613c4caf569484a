//go:build unix

package lockprobe

import (
	"errors"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Descriptor probes with flock(2) on the already open handle.
type Descriptor struct {
	logger *slog.Logger
}

// IsLocked reports true only when the lock is held elsewhere.
func (d *Descriptor) IsLocked(f *os.File) bool {
	conn, err := f.SyscallConn()
	if err != nil {
		reportAmbiguous(d.logger, f, err)
		return false
	}

	var lockErr error
	if err := conn.Control(func(fd uintptr) {
		lockErr = unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB)
		if lockErr == nil {
			_ = unix.Flock(int(fd), unix.LOCK_UN)
		}
	}); err != nil {
		reportAmbiguous(d.logger, f, err)
		return false
	}

	switch {
	case lockErr == nil:
		return false
	case errors.Is(lockErr, unix.EWOULDBLOCK):
		return true
	default:
		reportAmbiguous(d.logger, f, lockErr)
		return false
	}
}
