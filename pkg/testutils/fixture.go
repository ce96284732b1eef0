// Package testutils builds on-disk collection fixtures for tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree writes files, keyed by slash separated path, under root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// NewCollection creates a collection called namespace.name in a temporary
// directory, with a galaxy.yml and files, and returns its path.
func NewCollection(t *testing.T, namespace, name string, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"galaxy.yml": fmt.Sprintf("namespace: %s\nname: %s\nversion: 1.0.0\n", namespace, name),
	})
	WriteTree(t, root, files)
	return root
}

// Aliases returns the path of the aliases file of an integration target.
func Aliases(target string) string {
	return "tests/integration/targets/" + target + "/aliases"
}
