// Package inputs parses the values the CI workflow hands to the tool.
package inputs

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ansible-network/github-actions/pkg/constants"
	errs "github.com/ansible-network/github-actions/pkg/errors"
)

var targetsToTestRe = regexp.MustCompile(`(?im)^TargetsToTest=([\w\.\:,;]+)`)

// CollectionRef is a collection checkout and the ref its changes are computed against.
type CollectionRef struct {
	Path string `validate:"required"`
	Ref  string `validate:"required"`
}

// ParseCollections parses path:ref items separated by commas or new lines.
// Blank items are skipped, every path must exist.
func ParseCollections(value string) ([]CollectionRef, error) {
	items := strings.Split(strings.ReplaceAll(value, "\n", ","), ",")
	collections := make([]CollectionRef, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		info := strings.Split(item, ":")
		if len(info) != 2 {
			return nil, errs.Configf("the following '%s' is not a valid format for collection definition", item)
		}
		if _, err := os.Stat(info[0]); err != nil {
			return nil, errs.Configf("the following path '%s' does not exist", info[0])
		}
		collections = append(collections, CollectionRef{Path: info[0], Ref: info[1]})
	}
	return collections, nil
}

// ParseTotalJobs returns the number of job slots, the default when value is
// empty, not a number or lower than one.
func ParseTotalJobs(value string) int {
	jobs, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || jobs < 1 {
		return constants.DefaultTotalJobs
	}
	return jobs
}

// ParseTestAll reports whether value is "true", in any case.
func ParseTestAll(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// ParseTargetsToTest reads the TargetsToTest=col:t1,t2;col2:t3 line of a pull
// request body. It returns nil when the body has no such line.
func ParseTargetsToTest(body string) map[string][]string {
	match := targetsToTestRe.FindStringSubmatch(body)
	if match == nil {
		return nil
	}
	targets := make(map[string][]string)
	for _, item := range strings.Split(match[1], constants.SlotDelimiter) {
		if item == "" {
			continue
		}
		elements := strings.SplitN(item, constants.SlotTargetsDelimiter, 2)
		if len(elements) != 2 {
			continue
		}
		names := make([]string, 0)
		for _, name := range strings.Split(elements[1], constants.TargetsDelimiter) {
			if name != "" {
				names = append(names, name)
			}
		}
		targets[elements[0]] = append(targets[elements[0]], names...)
	}
	if len(targets) == 0 {
		return nil
	}
	return targets
}
