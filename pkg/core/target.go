package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ansible-network/github-actions/pkg/constants"
)

var (
	timeSecondsRe = regexp.MustCompile(`^time=([0-9]+)s\S*$`)
	timeMinutesRe = regexp.MustCompile(`^time=([0-9]+)m\S*$`)
	timeRawRe     = regexp.MustCompile(`^time=([0-9]+)\S*$`)
)

// Target is an integration test target, loaded from its aliases file.
type Target struct {
	Name string
	// Directives are the non empty lines of the aliases file without comments.
	Directives []string
	// ExecutionTime is the estimated run time in seconds.
	ExecutionTime int
}

// NewTarget builds the target called name from the content of its aliases file.
func NewTarget(name, aliases string) *Target {
	t := &Target{Name: name, Directives: parseDirectives(aliases)}
	t.ExecutionTime = t.estimateExecutionTime()
	return t
}

func parseDirectives(content string) []string {
	directives := make([]string, 0)
	for _, line := range strings.Split(content, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		if line = strings.TrimSpace(line); line != "" {
			directives = append(directives, line)
		}
	}
	return directives
}

func (t *Target) estimateExecutionTime() int {
	execTime := constants.RegularTargetTime
	if t.IsSlow() {
		execTime = constants.SlowTargetTime
	}
	for _, line := range t.Directives {
		if m := timeSecondsRe.FindStringSubmatch(line); m != nil {
			execTime = seconds(m[1], 1)
		} else if m := timeMinutesRe.FindStringSubmatch(line); m != nil {
			execTime = seconds(m[1], 60)
		} else if m := timeRawRe.FindStringSubmatch(line); m != nil {
			execTime = seconds(m[1], 1)
		}
	}
	return execTime
}

// seconds converts a digits only duration in unit seconds, clamped to MaxInt32.
func seconds(digits string, unit int64) int {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || v > math.MaxInt32/unit {
		return math.MaxInt32
	}
	return int(v * unit)
}

func (t *Target) has(directive string) bool {
	for _, d := range t.Directives {
		if d == directive {
			return true
		}
	}
	return false
}

// IsAliasOf reports whether the target runs for changes tied to name.
func (t *Target) IsAliasOf(name string) bool {
	return t.Name == name || t.has(name)
}

// IsDisabled reports whether the target is disabled.
func (t *Target) IsDisabled() bool {
	return t.has(constants.DirectiveDisabled)
}

// IsUnstable reports whether the target is unstable.
func (t *Target) IsUnstable() bool {
	return t.has(constants.DirectiveUnstable)
}

// IsSlow reports whether the target is slow.
func (t *Target) IsSlow() bool {
	return t.has(constants.DirectiveSlow)
}

// IsIgnored reports whether the target must not be pulled in indirectly.
func (t *Target) IsIgnored() bool {
	for _, d := range []string{
		constants.DirectiveUnsupported,
		constants.DirectiveDisabled,
		constants.DirectiveUnstable,
		constants.DirectiveHidden,
	} {
		if t.has(d) {
			return true
		}
	}
	return false
}
