package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config", errs.ConfigWrap(errs.ErrMissingCollections, "load"), ExitConfigError},
		{"wrapped config", fmt.Errorf("run: %w", errs.Configf("bad input %s", "x")), ExitConfigError},
		{"command", errors.Wrap(&errs.CommandError{Command: []string{"git", "diff"}}, "changes"), ExitCommandFailed},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	root := RootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "dev\n", out.String())
}

func TestTargetsCommand(t *testing.T) {
	col := testutils.NewCollection(t, "amazon", "aws", map[string]string{
		"plugins/modules/ec2_vpc.py":       "import json\n",
		testutils.Aliases("ec2_vpc"):       "cloud/aws\n",
		testutils.Aliases("setup_ec2_vpc"): "hidden\n",
	})
	output := filepath.Join(t.TempDir(), "github_output")

	root := RootCommand()
	root.SetArgs([]string{"targets",
		"--collections", col + ":main",
		"--test-all",
		"--total-jobs", "2",
		"--output-file", output,
	})
	require.NoError(t, root.Execute())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "test_targets=amazon.aws-1:ec2_vpc\n", string(content))
}

func TestTargetsCommandInvalidCollections(t *testing.T) {
	root := RootCommand()
	root.SetArgs([]string{"--collections", filepath.Join(t.TempDir(), "missing") + ":main"})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}
