package jobdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ErrNotDirectory reports a job directory path that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Dir is a validated job directory.
type Dir struct {
	path string
}

// Open validates that path exists and is a directory.
func Open(path string) (*Dir, error) {
	if strings.TrimSpace(path) == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("job directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("job directory %s: %w", path, ErrNotDirectory)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// Resolve maps a job name to a path. Absolute names are used as given.
func (d *Dir) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.path, name)
}

// Candidates lists entries whose name begins with marker, sorted by name.
func (d *Dir) Candidates(marker string) ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("list job directory %s: %w", d.path, err)
	}
	var names []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), marker) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// OpenJob opens a job file read-only.
func (d *Dir) OpenJob(name string) (*os.File, error) {
	file, err := os.Open(d.Resolve(name))
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: file.Name(), Err: errors.New("is a directory")}
	}
	return file, nil
}

// Job describes a job file for listings.
type Job struct {
	Name     string
	Size     int64
	Modified time.Time
	Running  bool
	Missing  bool
}

// Inspect reports the size, modification time, and lock state of each name.
// Names that cannot be opened are returned with Missing set.
func (d *Dir) Inspect(names []string, isLocked func(*os.File) bool) []Job {
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		job := Job{Name: name}
		file, err := d.OpenJob(name)
		if err != nil {
			job.Missing = true
			jobs = append(jobs, job)
			continue
		}
		if info, err := file.Stat(); err == nil {
			job.Size = info.Size()
			job.Modified = info.ModTime()
		}
		job.Running = isLocked(file)
		file.Close()
		jobs = append(jobs, job)
	}
	return jobs
}
