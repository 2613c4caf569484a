package lockprobe

import (
	"log/slog"
	"os"

	"github.com/gofrs/flock"
)

// Path probes through a second read-only handle on the file's path. Lock
// ownership belongs to the open file description, so the probe conflicts
// with the job's lock exactly as a probe on the caller's handle would.
type Path struct {
	logger *slog.Logger
}

// IsLocked reports true only when the lock is held elsewhere.
func (p *Path) IsLocked(f *os.File) bool {
	lock := flock.New(f.Name(), flock.SetFlag(os.O_RDONLY))
	ok, err := lock.TryLock()
	if err != nil {
		reportAmbiguous(p.logger, f, err)
		return false
	}
	if !ok {
		return true
	}
	if err := lock.Unlock(); err != nil {
		reportAmbiguous(p.logger, f, err)
	}
	return false
}
