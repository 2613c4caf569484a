package follow

import (
	"bytes"
	"io"
)

// FirstLineWriter passes bytes up to and including the first newline it sees
// and silently consumes everything after.
type FirstLineWriter struct {
	w    io.Writer
	done bool
}

// NewFirstLineWriter wraps w.
func NewFirstLineWriter(w io.Writer) *FirstLineWriter {
	return &FirstLineWriter{w: w}
}

// Write reports len(p) consumed even when bytes are suppressed.
func (q *FirstLineWriter) Write(p []byte) (int, error) {
	if q.done {
		return len(p), nil
	}
	chunk := p
	if i := bytes.IndexByte(p, '\n'); i >= 0 {
		chunk = p[:i+1]
		q.done = true
	}
	if _, err := q.w.Write(chunk); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Terminated reports whether a newline has been written.
func (q *FirstLineWriter) Terminated() bool {
	return q.done
}

// Finish terminates the line if no newline was ever written.
func (q *FirstLineWriter) Finish() error {
	if q.done {
		return nil
	}
	q.done = true
	_, err := io.WriteString(q.w, "\n")
	return err
}
