package gitdiff

import (
	"context"
	"os"
	"strings"

	"github.com/ansible-network/github-actions/pkg/core"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/pkg/errors"
	"github.com/sourcegraph/go-diff/diff"
)

const devNull = "/dev/null"

type patch struct {
	logger lumber.Logger
	path   string
}

// NewPatch returns a Differ reading the changed files from a unified diff
// file, such as the .diff of a pull request. The base ref is not used.
func NewPatch(path string, logger lumber.Logger) core.Differ {
	return &patch{logger: logger, path: path}
}

func (p *patch) ChangedFiles(ctx context.Context, dir, baseRef string) ([]string, error) {
	content, err := os.ReadFile(p.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read diff file %s", p.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := ParseChangedFiles(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse diff file %s", p.path)
	}
	p.logger.Debugf("%d changed files read from %s", len(files), p.path)
	return files, nil
}

// ParseChangedFiles returns the paths touched by a multi file unified diff, in
// diff order. Deleted files are reported under their original name.
func ParseChangedFiles(content []byte) ([]string, error) {
	fileDiffs, err := diff.ParseMultiFileDiff(content)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(fileDiffs))
	seen := make(map[string]struct{}, len(fileDiffs))
	for _, fileDiff := range fileDiffs {
		name := fileDiff.NewName
		if name == "" || name == devNull {
			name = fileDiff.OrigName
		}
		name = strings.TrimPrefix(strings.TrimPrefix(name, "a/"), "b/")
		if name == "" || name == devNull {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		files = append(files, name)
	}
	return files, nil
}
