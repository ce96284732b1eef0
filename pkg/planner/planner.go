// Package planner runs one change-impact analysis: it loads the collections
// under test, builds their test plans and splits them into job slots.
package planner

import (
	"context"

	"github.com/ansible-network/github-actions/pkg/changes"
	"github.com/ansible-network/github-actions/pkg/collection"
	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/inputs"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/ansible-network/github-actions/pkg/testsplitter"
	"github.com/ansible-network/github-actions/pkg/utils"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

// Mode is how the test plans were selected.
type Mode string

// selection modes
const (
	ModeTargetsToTest Mode = "targets-to-test"
	ModeTestAll       Mode = "test-all"
	ModeChanges       Mode = "changes"
)

// Options are the inputs of one run.
type Options struct {
	Collections []inputs.CollectionRef `validate:"dive"`
	TotalJobs   int                    `validate:"min=1"`
	TestAll     bool
	PRBody      string
}

// Summary describes what a run selected, it is logged as JSON.
type Summary struct {
	RunID    string                     `json:"run_id"`
	Mode     Mode                       `json:"mode"`
	Changes  map[string]*core.ChangeSet `json:"changes,omitempty"`
	TestPlan map[string][]string        `json:"test_plan"`
	Batches  []core.Batch               `json:"batches"`
}

// Result is the outcome of a run.
type Result struct {
	Summary
	// TestTargets is the rendered test_targets output value.
	TestTargets string `json:"test_targets"`
}

// Planner wires the components of a run together.
type Planner struct {
	logger   lumber.Logger
	differ   core.Differ
	builder  core.GraphBuilder
	output   core.OutputWriter
	validate *validator.Validate
}

// New returns a Planner.
func New(differ core.Differ,
	builder core.GraphBuilder,
	output core.OutputWriter,
	logger lumber.Logger) *Planner {
	return &Planner{
		logger:   logger,
		differ:   differ,
		builder:  builder,
		output:   output,
		validate: validator.New(),
	}
}

// Run computes the test plan of every collection, splits them over the job
// slots and writes the test_targets output.
func (p *Planner) Run(ctx context.Context, opts *Options) (*Result, error) {
	if len(opts.Collections) == 0 {
		return nil, errs.ConfigWrap(errs.ErrMissingCollections, "invalid targets options")
	}
	if err := p.validate.Struct(opts); err != nil {
		return nil, errs.ConfigWrap(err, "invalid targets options")
	}
	runID := utils.GenerateUUID()
	logger := p.logger.WithFields(lumber.Fields{"run_id": runID})

	collections := make([]*collection.Collection, 0, len(opts.Collections))
	names := make([]string, 0, len(opts.Collections))
	for _, ref := range opts.Collections {
		c, err := collection.New(ref.Path, p.builder, logger)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
		names = append(names, c.Name)
	}
	logger.Infof("collections => %v, total jobs => %d, test all => %t", names, opts.TotalJobs, opts.TestAll)

	result := &Result{Summary: Summary{RunID: runID}}
	var err error
	if targets := inputs.ParseTargetsToTest(opts.PRBody); targets != nil {
		logger.Infof("TargetsToTest => %v", targets)
		result.Mode = ModeTargetsToTest
		err = coverTargetsToTest(collections, targets)
	} else if opts.TestAll {
		result.Mode = ModeTestAll
		err = coverAll(collections)
	} else {
		result.Mode = ModeChanges
		result.Changes, err = p.coverChanges(ctx, logger, opts.Collections, collections, names)
	}
	if err != nil {
		return nil, err
	}

	result.TestPlan = make(map[string][]string, len(collections))
	result.Batches = make([]core.Batch, 0)
	splitter := testsplitter.NewTestSplitter(opts.TotalJobs, logger)
	for _, c := range collections {
		result.TestPlan[c.Name] = c.TestPlanNames()
		logger.Debugf("%s: slow targets %v, regular targets %v", c.Name, c.SlowTargets(), c.RegularTargets())
		batches, err := splitter.Batches(c.Name, c.TestPlan())
		if err != nil {
			return nil, err
		}
		result.Batches = append(result.Batches, batches...)
	}
	result.TestTargets = testsplitter.Render(result.Batches)

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if summary, err := json.MarshalToString(result.Summary); err == nil {
		logger.Infof("changes => %s", summary)
	} else {
		logger.Warnf("failed to encode run summary: %v", err)
	}
	logger.Infof("test_targets => %s", result.TestTargets)

	if err := p.output.Write(constants.TestTargetsOutputKey, result.TestTargets); err != nil {
		return nil, err
	}
	return result, nil
}

func coverTargetsToTest(collections []*collection.Collection, targets map[string][]string) error {
	for _, c := range collections {
		for _, name := range targets[c.Name] {
			if err := c.AddTarget(name, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func coverAll(collections []*collection.Collection) error {
	for _, c := range collections {
		if err := c.CoverAll(); err != nil {
			return err
		}
	}
	return nil
}

// coverChanges applies the changes of every collection to all of them, a
// change in one collection can impact the targets of another.
func (p *Planner) coverChanges(ctx context.Context,
	logger lumber.Logger,
	refs []inputs.CollectionRef,
	collections []*collection.Collection,
	names []string) (map[string]*core.ChangeSet, error) {
	changeSets := make(map[string]*core.ChangeSet, len(collections))
	for i, c := range collections {
		detector := changes.NewDetector(c.Path, refs[i].Ref, c.Name, p.differ, logger)
		cs, err := detector.ChangeSet(ctx)
		if err != nil {
			return nil, err
		}
		changeSets[c.Name] = cs
		if err := applyChanges(ctx, cs, collections, names); err != nil {
			return nil, err
		}
	}
	return changeSets, nil
}

// applyChanges adds the targets impacted by cs to every collection. A changed
// role adds the target of the same name.
func applyChanges(ctx context.Context,
	cs *core.ChangeSet,
	collections []*collection.Collection,
	names []string) error {
	direct := make([]string, 0)
	for _, path := range cs.Modules {
		direct = append(direct, changes.Stem(path))
	}
	for _, path := range cs.Inventory {
		direct = append(direct, constants.InventoryTargetPrefix+changes.Stem(path))
	}
	for _, path := range cs.Connection {
		direct = append(direct, constants.ConnectionTargetPrefix+changes.Stem(path))
	}
	for _, c := range collections {
		for _, name := range direct {
			if err := c.AddTarget(name, true); err != nil {
				return err
			}
		}
	}

	utilities := []struct {
		prefix  string
		changed []core.UtilChange
	}{
		{prefix: constants.ModuleUtilsTargetPrefix, changed: cs.ModuleUtils},
		{prefix: constants.PluginUtilsTargetPrefix, changed: cs.PluginUtils},
	}
	for _, kind := range utilities {
		for _, util := range kind.changed {
			for _, c := range collections {
				if err := c.AddTarget(kind.prefix+changes.Stem(util.Path), true); err != nil {
					return err
				}
				if err := c.CoverModuleUtils(ctx, util.Name, names); err != nil {
					return err
				}
			}
		}
	}

	direct = direct[:0]
	for _, path := range cs.Lookup {
		direct = append(direct, constants.LookupTargetPrefix+changes.Stem(path))
	}
	direct = append(direct, cs.Targets...)
	roles := make([]string, 0, len(cs.Roles))
	for _, path := range cs.Roles {
		roles = append(roles, changes.RoleName(path))
	}
	direct = append(direct, utils.UniqueStrings(roles)...)
	for _, c := range collections {
		for _, name := range direct {
			if err := c.AddTarget(name, true); err != nil {
				return err
			}
		}
	}
	return nil
}
