// Package testutil holds fixture helpers shared by package tests.
package testutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateFile creates or truncates the file at path.
func CreateFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create file %q: %w", path, err)
	}
	return f, nil
}

// WriteFile writes content to f.
func WriteFile(f *os.File, content string) error {
	if _, err := io.WriteString(f, content); err != nil {
		return fmt.Errorf("could not write to file %q: %w", f.Name(), err)
	}
	return nil
}

// WriteManifest writes content to dir/name and returns the path.
// Usage:
//
//	path := testutil.WriteManifest(t, t.TempDir(), "Memora.yml", "cache_root_dir: .cache\nartifacts: {}\n")
func WriteManifest(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, WriteFile(f, content))
	require.NoError(t, f.Close())
	return path
}

// Touch materializes rel under root, creating parent directories, and
// returns the full path.
func Touch(t testing.TB, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, WriteFile(f, rel))
	require.NoError(t, f.Close())
	return path
}
