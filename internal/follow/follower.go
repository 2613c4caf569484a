package follow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fq/internal/lockprobe"
	"fq/internal/logging"
	"fq/internal/waiter"
)

// DefaultChunkSize bounds a single read regardless of how far a file grew.
const DefaultChunkSize = 8192

// ErrOutput marks failures writing to the output stream. They end the whole
// run rather than one file.
var ErrOutput = errors.New("write output")

// Options configures a Follower.
type Options struct {
	Quiet     bool
	ChunkSize int
	Prober    lockprobe.Prober
	Strategy  waiter.Strategy
	Logger    *slog.Logger
}

// Follower tails one job file at a time to a shared output.
type Follower struct {
	out       io.Writer
	quiet     bool
	chunkSize int
	prober    lockprobe.Prober
	strategy  waiter.Strategy
	logger    *slog.Logger
}

// NewFollower returns a Follower writing to out.
func NewFollower(out io.Writer, opts Options) (*Follower, error) {
	if out == nil {
		return nil, errors.New("follower requires an output writer")
	}
	if opts.Prober == nil || opts.Strategy == nil {
		return nil, errors.New("follower requires a lock prober and a wait strategy")
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Follower{
		out:       out,
		quiet:     opts.Quiet,
		chunkSize: chunkSize,
		prober:    opts.Prober,
		strategy:  opts.Strategy,
		logger:    logging.NewComponentLogger(opts.Logger, "follow"),
	}, nil
}

// IsLocked reports whether the job owning file is still running.
func (f *Follower) IsLocked(file *os.File) bool {
	return f.prober.IsLocked(file)
}

// Follow prints the header for name, then streams file until the job has
// released its lock and no growth remains. file is closed on return.
func (f *Follower) Follow(ctx context.Context, name string, file *os.File) (err error) {
	defer file.Close()

	if err := f.writeHeader(name); err != nil {
		return err
	}

	var out io.Writer = f.out
	var firstLine *FirstLineWriter
	if f.quiet {
		firstLine = NewFirstLineWriter(f.out)
		out = firstLine
	}

	w, err := f.strategy.Watch(file)
	if err != nil {
		return fmt.Errorf("watch %s: %w", name, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			f.logger.Debug("close waiter", logging.Job(name), logging.Error(cerr))
		}
	}()

	copied, err := f.stream(ctx, name, file, out, w)
	f.logger.Debug("job drained", logging.Job(name), slog.Int64("bytes", copied), slog.String("wait", f.strategy.Name()))

	if firstLine != nil {
		// Terminate the header line even when the run is cut short.
		if ferr := firstLine.Finish(); ferr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrOutput, ferr)
		}
	}
	return err
}

func (f *Follower) writeHeader(name string) error {
	sep := "\n"
	if f.quiet {
		sep = " "
	}
	if _, err := io.WriteString(f.out, "==> "+name+sep); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}

// stream runs the STREAMING state and returns the bytes copied.
func (f *Follower) stream(ctx context.Context, name string, file *os.File, out io.Writer, w waiter.Waiter) (int64, error) {
	buf := make([]byte, f.chunkSize)
	var cursor, copied int64
	for {
		info, err := file.Stat()
		if err != nil {
			return copied, fmt.Errorf("stat %s: %w", name, err)
		}
		end := info.Size()

		if end < cursor {
			f.logger.Debug("job file truncated", logging.Job(name), slog.Int64("cursor", cursor), slog.Int64("size", end))
			cursor = end
		}

		if end == cursor {
			if !f.prober.IsLocked(file) {
				return copied, nil
			}
			if err := w.Wait(ctx, cursor); err != nil {
				return copied, err
			}
			continue
		}

		want := end - cursor
		if want > int64(len(buf)) {
			want = int64(len(buf))
		}
		n, err := file.ReadAt(buf[:want], cursor)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return copied, fmt.Errorf("%w: %w", ErrOutput, werr)
			}
			cursor += int64(n)
			copied += int64(n)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return copied, fmt.Errorf("read %s: %w", name, err)
		}
	}
}
