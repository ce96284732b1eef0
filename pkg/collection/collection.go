// Package collection loads an Ansible collection checkout and accumulates the
// integration targets it has to run.
package collection

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is the part of galaxy.yml we read.
type Manifest struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Version   string `yaml:"version"`
}

// FullName returns namespace.name.
func (m *Manifest) FullName() string {
	return m.Namespace + "." + m.Name
}

// ReadManifest parses the galaxy.yml of the collection rooted at root.
func ReadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, constants.GalaxyFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Configf("cannot read collection manifest %s: %v", path, err)
	}
	manifest := new(Manifest)
	if err := yaml.Unmarshal(content, manifest); err != nil {
		return nil, errs.Configf("invalid collection manifest %s: %v", path, err)
	}
	if manifest.Namespace == "" || manifest.Name == "" {
		return nil, errs.Configf("collection manifest %s must define namespace and name", path)
	}
	return manifest, nil
}

// Collection is a collection under test and its test plan.
type Collection struct {
	Path     string
	Name     string
	Manifest *Manifest

	logger  lumber.Logger
	builder core.GraphBuilder
	targets []*core.Target
	loaded  bool
	plan    []*core.Target
	graph   *core.DependencyGraph
}

// New loads the collection rooted at path.
func New(path string, builder core.GraphBuilder, logger lumber.Logger) (*Collection, error) {
	manifest, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return &Collection{
		Path:     path,
		Name:     manifest.FullName(),
		Manifest: manifest,
		logger:   logger.WithFields(lumber.Fields{"collection": manifest.FullName()}),
		builder:  builder,
		plan:     make([]*core.Target, 0),
	}, nil
}

// Targets returns the integration targets of the collection, sorted by name.
// Targets are read from disk on first use.
func (c *Collection) Targets() ([]*core.Target, error) {
	if c.loaded {
		return c.targets, nil
	}
	pattern := filepath.Join(c.Path, filepath.FromSlash(constants.IntegrationTargets), "*", constants.AliasesFileName)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list targets of %s", c.Name)
	}
	sort.Strings(matches)
	targets := make([]*core.Target, 0, len(matches))
	for _, aliases := range matches {
		content, err := os.ReadFile(aliases)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", aliases)
		}
		targets = append(targets, core.NewTarget(filepath.Base(filepath.Dir(aliases)), string(content)))
	}
	c.logger.Debugf("%d integration targets found", len(targets))
	c.targets = targets
	c.loaded = true
	return c.targets, nil
}

func (c *Collection) inPlan(name string) bool {
	for _, t := range c.plan {
		if t.IsAliasOf(name) {
			return true
		}
	}
	return false
}

// AddTarget adds to the plan every target running for name. Nothing is
// added when a planned target already covers name. Disabled targets are never
// added, ignored targets only when isDirect.
func (c *Collection) AddTarget(name string, isDirect bool) error {
	if c.inPlan(name) {
		return nil
	}
	targets, err := c.Targets()
	if err != nil {
		return err
	}
	for _, t := range targets {
		if t.IsDisabled() {
			continue
		}
		if !isDirect && t.IsIgnored() {
			continue
		}
		if t.IsAliasOf(name) {
			c.logger.Debugf("adding target %s for %s", t.Name, name)
			c.plan = append(c.plan, t)
		}
	}
	return nil
}

// CoverAll adds every target of the collection as an indirect target.
func (c *Collection) CoverAll() error {
	targets, err := c.Targets()
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := c.AddTarget(t.Name, false); err != nil {
			return err
		}
	}
	return nil
}

// Graph returns the import graph of the collection, built on first use.
func (c *Collection) Graph(ctx context.Context, collectionNames []string) (*core.DependencyGraph, error) {
	if c.graph != nil {
		return c.graph, nil
	}
	graph, err := c.builder.Build(ctx, c.Path, c.Name, collectionNames)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build import graph of %s", c.Name)
	}
	c.graph = graph
	return c.graph, nil
}

// CoverModuleUtils adds, as indirect targets, the modules importing utility
// or a utility that itself imports utility.
func (c *Collection) CoverModuleUtils(ctx context.Context, utility string, collectionNames []string) error {
	graph, err := c.Graph(ctx, collectionNames)
	if err != nil {
		return err
	}
	candidates := map[string]struct{}{utility: {}}
	for _, util := range graph.UtilityImports.Keys() {
		if graph.UtilityImports.Contains(util, utility) {
			candidates[util] = struct{}{}
		}
	}
	for _, module := range graph.ModuleImports.Keys() {
		for _, imp := range graph.ModuleImports.Get(module) {
			if _, ok := candidates[imp]; ok {
				if err := c.AddTarget(module, false); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

// TestPlan returns the planned targets in insertion order.
func (c *Collection) TestPlan() []*core.Target {
	return c.plan
}

// TestPlanNames returns the names of the planned targets in insertion order.
func (c *Collection) TestPlanNames() []string {
	names := make([]string, 0, len(c.plan))
	for _, t := range c.plan {
		names = append(names, t.Name)
	}
	return names
}

// SlowTargets returns the sorted names of the planned slow targets.
func (c *Collection) SlowTargets() []string {
	return c.planNames(func(t *core.Target) bool { return t.IsSlow() })
}

// RegularTargets returns the sorted names of the planned targets that are not slow.
func (c *Collection) RegularTargets() []string {
	return c.planNames(func(t *core.Target) bool { return !t.IsSlow() })
}

func (c *Collection) planNames(keep func(*core.Target) bool) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, t := range c.plan {
		if _, ok := seen[t.Name]; ok || !keep(t) {
			continue
		}
		seen[t.Name] = struct{}{}
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
