// Package testutil provides test helpers and fixtures for dupefinder
// tests. All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFixture holds paths to a scratch directory tree
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)
}

// NewFixture creates a new test fixture rooted in a temp directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateTree creates many files at once from a relpath -> content map
// and returns their paths keyed by relpath.
func (f *TestFixture) CreateTree(files map[string]string) map[string]string {
	f.T.Helper()

	paths := make(map[string]string, len(files))
	for relPath, content := range files {
		paths[relPath] = f.CreateFile(relPath, []byte(content))
	}
	return paths
}

// CreateDuplicates creates the same content at several relative paths
func (f *TestFixture) CreateDuplicates(content string, relPaths ...string) []string {
	f.T.Helper()

	paths := make([]string, 0, len(relPaths))
	for _, relPath := range relPaths {
		paths = append(paths, f.CreateFile(relPath, []byte(content)))
	}
	return paths
}

// CreateSymlink creates a symlink and returns its path
func (f *TestFixture) CreateSymlink(target, relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.RootDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.Symlink(target, fullPath); err != nil {
		f.T.Fatalf("failed to create symlink %s: %v", fullPath, err)
	}
	return fullPath
}

// Path returns the absolute path for a relative path inside the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}
