// Package gitdiff lists the files changed in a collection checkout.
package gitdiff

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/lumber"
)

const gitBinary = "git"

type git struct {
	logger lumber.Logger
	remote string
}

// NewGit returns a Differ running `git diff <remote>/<ref> --name-only`.
// An empty remote diffs against the bare ref.
func NewGit(remote string, logger lumber.Logger) core.Differ {
	return &git{logger: logger, remote: remote}
}

func (g *git) ChangedFiles(ctx context.Context, dir, baseRef string) ([]string, error) {
	ref := baseRef
	if g.remote != "" {
		ref = g.remote + "/" + baseRef
	}
	args := []string{"diff", ref, "--name-only"}

	cmd := exec.CommandContext(ctx, gitBinary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.logger.Debugf("running git %s in %s", strings.Join(args, " "), dir)
	if err := cmd.Run(); err != nil {
		return nil, &errs.CommandError{
			Command: append([]string{gitBinary}, args...),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}
	return splitLines(stdout.String()), nil
}

func splitLines(output string) []string {
	files := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}
