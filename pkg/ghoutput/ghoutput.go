// Package ghoutput publishes step outputs the way GitHub Actions reads them.
package ghoutput

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ansible-network/github-actions/pkg/core"
	"github.com/pkg/errors"
)

type writer struct {
	path   string
	stdout io.Writer
}

// New returns an OutputWriter appending to the file at path, or writing to
// stdout when path is empty.
func New(path string, stdout io.Writer) core.OutputWriter {
	return &writer{path: path, stdout: stdout}
}

func (w *writer) Write(key, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return errors.Errorf("output %s must fit on one line", key)
	}
	line := fmt.Sprintf("%s=%s\n", key, value)
	if w.path == "" {
		_, err := io.WriteString(w.stdout, line)
		return err
	}
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open output file %s", w.path)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write output file %s", w.path)
	}
	return f.Close()
}
