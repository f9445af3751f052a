package testutils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadPackage returns the files of a generated package keyed by name.
// It fails the test immediately on error or if the package contains a directory.
func ReadPackage(t *testing.T, dir string) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "Failed to list package %s", dir)

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		require.False(t, e.IsDir(), "unexpected directory %s in package", e.Name())
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(data)
	}
	return files
}

// FileNames returns the sorted keys of a ReadPackage result.
func FileNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
