package testsupport

import (
	"os"
	"testing"
)

// UnsetEnv removes key for the duration of the test and restores it after.
func UnsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
