package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// MkdirAll creates dir and its parents.
func MkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WriteFile creates or replaces path with content.
func WriteFile(t testing.TB, path string, content string) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AppendFile appends data to path, creating it when needed.
func AppendFile(t testing.TB, path string, data []byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open %s for append: %v", path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}

// TruncateFile shrinks or grows path to size.
func TruncateFile(t testing.TB, path string, size int64) {
	t.Helper()
	if err := os.Truncate(path, size); err != nil {
		t.Fatalf("truncate %s: %v", path, err)
	}
}

// Pattern returns size bytes of a repeating printable pattern, so misordered
// or duplicated ranges show up in comparisons.
func Pattern(size int) []byte {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	var buf bytes.Buffer
	buf.Grow(size)
	for i := 0; i < size; i++ {
		buf.WriteByte(alphabet[(i*7+i/len(alphabet))%len(alphabet)])
	}
	return buf.Bytes()
}
