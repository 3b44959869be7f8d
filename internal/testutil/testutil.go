// Package testutil provides testing utilities for rcellosaurus packages.
// It includes a small Cellosaurus XML fixture and helpers for loading it.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempFile creates a file with the given content inside a test-scoped
// temporary directory and returns its path.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// SkipIfShort skips the test if running in short mode.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping in short mode: %s", reason)
	}
}
