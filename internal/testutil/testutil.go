// Package testutil provides common test helpers for the use project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteUseFile writes a .use descriptor at the given path, creating parent
// directories as needed, and returns the path.
func WriteUseFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("WriteUseFile: mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteUseFile: write failed: %v", err)
	}
	return path
}

// AutoTree creates an auto-versioned package layout under a temp dir:
//
//	<root>/<product>/<version>/wrapper/<product>.use
//
// and returns the root and the descriptor path. With the default offset
// of 2 the version directory sits two levels above the file.
func AutoTree(t *testing.T, product, version, content string) (root, file string) {
	t.Helper()

	root = t.TempDir()
	file = filepath.Join(root, product, version, "wrapper", product+".use")
	WriteUseFile(t, file, content)
	return root, file
}

// BakedTree creates a baked-versioned package layout under a temp dir:
//
//	<root>/<stem>.use
//
// where the stem carries the version after its last hyphen.
func BakedTree(t *testing.T, stem, content string) (root, file string) {
	t.Helper()

	root = t.TempDir()
	file = filepath.Join(root, stem+".use")
	WriteUseFile(t, file, content)
	return root, file
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}
	return path
}

// TempHistoryFile creates a temporary history file path inside a temp dir.
// The file itself is not created, matching a fresh session.
func TempHistoryFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.usehistory")
}

// StaticEnv returns a lookup function over a fixed environment map, for
// driving the shell renderer in tests.
func StaticEnv(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}
