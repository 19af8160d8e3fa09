package acceptance

import (
	"os"
	"path/filepath"
	"testing"
)

const binaryPath = "../../bin/skillet"

// TestMain runs setup and teardown for acceptance tests
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// requireBinary skips the test when the skillet binary has not been built
// and returns its absolute path so commands can run from any directory.
func requireBinary(t *testing.T) string {
	t.Helper()
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Skipping test: skillet binary not found at %s, build it with 'go build -o bin/skillet ./cmd/skillet'", binaryPath)
	}
	abs, err := filepath.Abs(binaryPath)
	if err != nil {
		t.Fatalf("Failed to resolve binary path: %v", err)
	}
	return abs
}
