package follow

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"fq/internal/logging"
)

// Opener opens job files by name.
type Opener interface {
	OpenJob(name string) (*os.File, error)
}

// Summary reports what a Session did.
type Summary struct {
	Followed []string
	Skipped  int
}

// Session follows candidates in order, one at a time.
type Session struct {
	jobs     Opener
	follower *Follower
	showAll  bool
	logger   *slog.Logger
}

// NewSession returns a Session. With showAll unset, only running jobs are
// followed, plus the last candidate when nothing else was.
func NewSession(jobs Opener, follower *Follower, showAll bool, logger *slog.Logger) *Session {
	return &Session{
		jobs:     jobs,
		follower: follower,
		showAll:  showAll,
		logger:   logging.NewComponentLogger(logger, "follow"),
	}
}

// Run follows each selected candidate to completion. Files that cannot be
// opened are skipped. A read failure ends that file only; output failures and
// cancellation end the run.
func (s *Session) Run(ctx context.Context, names []string) (Summary, error) {
	var summary Summary
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		file, err := s.jobs.OpenJob(name)
		if err != nil {
			s.logger.Debug("skipping unopenable job", logging.Job(name), logging.Error(err))
			summary.Skipped++
			continue
		}

		last := i == len(names)-1
		if !s.selected(file, last, len(summary.Followed) > 0) {
			file.Close()
			summary.Skipped++
			continue
		}

		summary.Followed = append(summary.Followed, name)
		if err := s.follower.Follow(ctx, name, file); err != nil {
			if errors.Is(err, ErrOutput) || ctx.Err() != nil {
				return summary, err
			}
			s.logger.Warn("stopped following job", logging.Job(name), logging.Error(err))
		}
	}
	return summary, nil
}

func (s *Session) selected(file *os.File, last, followedAny bool) bool {
	if s.showAll {
		return true
	}
	if s.follower.IsLocked(file) {
		return true
	}
	return last && !followedAny
}
