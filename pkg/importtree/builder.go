// Package importtree builds the module to utility import graph of a collection.
package importtree

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/pkg/errors"
)

type builder struct {
	logger  lumber.Logger
	scanner core.ImportScanner
}

// NewBuilder returns a GraphBuilder using scanner to list python imports.
func NewBuilder(scanner core.ImportScanner, logger lumber.Logger) core.GraphBuilder {
	return &builder{logger: logger, scanner: scanner}
}

// PluginsPrefix returns the python package prefix of the plugins of a collection.
func PluginsPrefix(collectionName string) string {
	return constants.CollectionsNamespace + "." + collectionName + ".plugins."
}

// Build scans the modules of the collection rooted at root, then follows the
// utilities they import within the collection itself.
func (b *builder) Build(ctx context.Context,
	root, collectionName string,
	allCollectionNames []string) (*core.DependencyGraph, error) {
	graph := core.NewDependencyGraph()
	prefix := PluginsPrefix(collectionName)
	prefixes := make([]string, 0, len(allCollectionNames))
	for _, name := range allCollectionNames {
		prefixes = append(prefixes, PluginsPrefix(name))
	}

	modules, err := listModules(filepath.Join(root, constants.ModulesPath))
	if err != nil {
		return nil, err
	}

	toVisit := make([]string, 0)
	queued := make(map[string]struct{})
	for _, modulePath := range modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stem := strings.TrimSuffix(filepath.Base(modulePath), filepath.Ext(modulePath))
		imports, err := b.scanFile(ctx, modulePath, prefix, constants.ModulesPackage)
		if err != nil {
			continue
		}
		graph.ModuleImports.Init(stem)
		for _, imp := range imports {
			if !hasAnyPrefix(imp, prefixes) {
				continue
			}
			graph.ModuleImports.Append(stem, imp)
			if _, ok := queued[imp]; !ok {
				queued[imp] = struct{}{}
				toVisit = append(toVisit, imp)
			}
		}
	}

	ownPackage := constants.CollectionsNamespace + "." + collectionName + "."
	visited := make(map[string]struct{})
	for len(toVisit) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		util := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		if _, ok := visited[util]; ok {
			continue
		}
		visited[util] = struct{}{}

		relative := strings.TrimPrefix(util, ownPackage)
		utilPath := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(relative, ".", "/")+".py"))
		imports, err := b.scanFile(ctx, utilPath, prefix, utilSubdir(util, prefix))
		if err != nil {
			continue
		}
		for _, imp := range imports {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			if graph.UtilityImports.Append(util, imp) {
				if _, ok := visited[imp]; !ok {
					toVisit = append(toVisit, imp)
				}
			}
		}
	}
	b.logger.Debugf("import graph of %s: %d modules, %d utilities",
		collectionName, graph.ModuleImports.Len(), graph.UtilityImports.Len())
	return graph, nil
}

// scanFile logs and returns read or parse failures, the caller skips the file.
func (b *builder) scanFile(ctx context.Context, path, prefix, subdir string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		b.logger.Warnf("skipping %s, cannot read it: %v", path, err)
		return nil, err
	}
	imports, err := b.scanner.Imports(ctx, prefix, subdir, source)
	if err != nil {
		b.logger.Warnf("skipping %s, cannot parse it: %v", path, err)
		return nil, err
	}
	return imports, nil
}

// listModules returns the files of dir, sorted. Symlinks are followed, broken
// ones skipped. A missing dir has no modules.
func listModules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to list modules in %s", dir)
	}
	modules := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		modules = append(modules, path)
	}
	sort.Strings(modules)
	return modules, nil
}

// utilSubdir is the plugins sub package a utility lives in, module_utils by default.
func utilSubdir(util, prefix string) string {
	rest := strings.TrimPrefix(util, prefix)
	if rest == util {
		return constants.ModuleUtilsPackage
	}
	if idx := strings.Index(rest, "."); idx > 0 {
		return rest[:idx]
	}
	return constants.ModuleUtilsPackage
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
