package ghoutput

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("previous=1\n"), 0o644))

	var stdout bytes.Buffer
	w := New(path, &stdout)
	require.NoError(t, w.Write("test_targets", "a.b-1:a,b;a.b-2:c"))
	require.NoError(t, w.Write("merge_commit_sha", "abc"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous=1\ntest_targets=a.b-1:a,b;a.b-2:c\nmerge_commit_sha=abc\n", string(content))
	assert.Empty(t, stdout.String())
}

func TestWriteToStdout(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, New("", &stdout).Write("test_targets", ""))
	assert.Equal(t, "test_targets=\n", stdout.String())
}

func TestWriteRejectsMultiline(t *testing.T) {
	var stdout bytes.Buffer
	assert.Error(t, New("", &stdout).Write("k", "a\nb"))
	assert.Empty(t, stdout.String())
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "output")
	assert.Error(t, New(path, nil).Write("k", "v"))
}
