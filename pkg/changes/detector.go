// Package changes classifies the files changed in a collection.
package changes

import (
	"context"
	"path"
	"strings"

	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/pkg/errors"
)

// Detector lists and classifies the changes of one collection checkout
// against its base ref. The changed files are computed once.
type Detector struct {
	CollectionPath string
	BaseRef        string
	CollectionName string

	differ core.Differ
	logger lumber.Logger
	files  []string
	loaded bool
}

// NewDetector returns a Detector for the collection checked out at collectionPath.
func NewDetector(collectionPath, baseRef, collectionName string,
	differ core.Differ,
	logger lumber.Logger) *Detector {
	return &Detector{
		CollectionPath: collectionPath,
		BaseRef:        baseRef,
		CollectionName: collectionName,
		differ:         differ,
		logger:         logger,
	}
}

// Files returns the changed paths, relative to the collection root.
func (d *Detector) Files(ctx context.Context) ([]string, error) {
	if d.loaded {
		return d.files, nil
	}
	files, err := d.differ.ChangedFiles(ctx, d.CollectionPath, d.BaseRef)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list changes of %s against %s", d.CollectionName, d.BaseRef)
	}
	d.logger.Debugf("%s: %d files changed against %s", d.CollectionName, len(files), d.BaseRef)
	d.files = files
	d.loaded = true
	return d.files, nil
}

// ChangeSet returns the classified changes.
func (d *Detector) ChangeSet(ctx context.Context) (*core.ChangeSet, error) {
	files, err := d.Files(ctx)
	if err != nil {
		return nil, err
	}
	return Classify(d.CollectionName, files), nil
}

// Classify sorts the changed files of collectionName into their buckets.
// A file may land in several buckets, unknown files only in Files.
func Classify(collectionName string, files []string) *core.ChangeSet {
	cs := &core.ChangeSet{
		Files:       files,
		Modules:     matches(files, constants.ModulesPath),
		Inventory:   matches(files, constants.InventoryPath),
		Connection:  matches(files, constants.ConnectionPath),
		Lookup:      matches(files, constants.LookupPath),
		ModuleUtils: utilMatches(files, collectionName, constants.ModuleUtilsPath, constants.ModuleUtilsPackage),
		PluginUtils: utilMatches(files, collectionName, constants.PluginUtilsPath, constants.PluginUtilsPackage),
		Roles:       matches(files, constants.RolesPath),
		Targets:     make([]string, 0),
	}
	seen := make(map[string]struct{})
	for _, file := range files {
		if !strings.HasPrefix(file, constants.IntegrationTargets) {
			continue
		}
		name := firstSegment(strings.TrimPrefix(file, constants.IntegrationTargets))
		if _, ok := seen[name]; ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
		cs.Targets = append(cs.Targets, name)
	}
	return cs
}

// Stem returns the file name of p without its extension.
func Stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// RoleName returns the role a path under roles/ belongs to.
func RoleName(p string) string {
	return firstSegment(strings.TrimPrefix(p, constants.RolesPath))
}

func firstSegment(p string) string {
	return strings.SplitN(p, "/", 2)[0]
}

func matches(files []string, base string) []string {
	matched := make([]string, 0)
	for _, file := range files {
		if strings.HasPrefix(file, base) {
			matched = append(matched, file)
		}
	}
	return matched
}

func utilMatches(files []string, collectionName, base, pkg string) []core.UtilChange {
	baseName := constants.CollectionsNamespace + "." + collectionName + ".plugins." + pkg + "."
	matched := make([]core.UtilChange, 0)
	for _, file := range files {
		if strings.HasPrefix(file, base) {
			matched = append(matched, core.UtilChange{Path: file, Name: baseName + Stem(file)})
		}
	}
	return matched
}
