package inputs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollections(t *testing.T) {
	dir := t.TempDir()
	col1 := filepath.Join(dir, "col1")
	col2 := filepath.Join(dir, "col2")
	for _, p := range []string{col1, col2} {
		require.NoError(t, os.Mkdir(p, 0o755))
	}

	collections, err := ParseCollections(col1 + ":main," + col2 + ":stable-1\n  ," + col1 + ":release")
	require.NoError(t, err)
	assert.Equal(t, []CollectionRef{
		{Path: col1, Ref: "main"},
		{Path: col2, Ref: "stable-1"},
		{Path: col1, Ref: "release"},
	}, collections)

	collections, err = ParseCollections("")
	require.NoError(t, err)
	assert.Empty(t, collections)
}

func TestParseCollectionsErrors(t *testing.T) {
	tests := []struct {
		value   string
		message string
	}{
		{value: "some_path", message: "not a valid format for collection definition"},
		{value: "some_path:b:c", message: "not a valid format for collection definition"},
		{value: "some_path:main", message: "does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, err := ParseCollections(tt.value)
			require.Error(t, err)
			var cfgErr *errs.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "some_path")
		})
	}
}

func TestParseTotalJobs(t *testing.T) {
	tests := map[string]int{
		"":    3,
		"any": 3,
		"07":  7,
		"5":   5,
		"0":   3,
		"-2":  3,
	}
	for value, want := range tests {
		assert.Equal(t, want, ParseTotalJobs(value), value)
	}
}

func TestParseTestAll(t *testing.T) {
	tests := map[string]bool{
		"":     false,
		"any":  false,
		"TRUE": true,
		"True": true,
		"true": true,
	}
	for value, want := range tests {
		assert.Equal(t, want, ParseTestAll(value), value)
	}
}

func TestParseTargetsToTest(t *testing.T) {
	assert.Nil(t, ParseTargetsToTest(""))
	assert.Nil(t, ParseTargetsToTest("No target to test set here"))

	want := map[string][]string{
		"collection1": {"target_01", "target_02"},
		"collection2": {"target_2"},
	}
	body := "This is the first line of my pull request description\n" +
		"TargetsToTest=collection1:target_01,target_02;collection2:target_2"
	assert.Equal(t, want, ParseTargetsToTest(body))

	body = "This is the first line of my pull request description\n" +
		"TARGETSTOTEST=collection1:target_01,target_02;collection2:target_2;"
	assert.Equal(t, want, ParseTargetsToTest(body))

	body = "TargetsToTest=amazon.aws:ec2_instance\r\nsome text"
	assert.Equal(t, map[string][]string{"amazon.aws": {"ec2_instance"}}, ParseTargetsToTest(body))
}
