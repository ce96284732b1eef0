package planner

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/ghoutput"
	"github.com/ansible-network/github-actions/pkg/importtree"
	"github.com/ansible-network/github-actions/pkg/inputs"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/ansible-network/github-actions/pkg/pyimport"
	"github.com/ansible-network/github-actions/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDiffer returns the changed files registered for a checkout.
type fakeDiffer map[string][]string

func (f fakeDiffer) ChangedFiles(ctx context.Context, dir, baseRef string) ([]string, error) {
	return f[dir], nil
}

type logEntry struct {
	message string
	fields  lumber.Fields
}

// recordingLogger keeps every message with the fields attached to the logger.
type recordingLogger struct {
	fields  lumber.Fields
	entries *[]logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{fields: lumber.Fields{}, entries: new([]logEntry)}
}

func (l *recordingLogger) record(format string, args ...interface{}) {
	*l.entries = append(*l.entries, logEntry{message: fmt.Sprintf(format, args...), fields: l.fields})
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) { l.record(format, args...) }
func (l *recordingLogger) Infof(format string, args ...interface{}) { l.record(format, args...) }
func (l *recordingLogger) Warnf(format string, args ...interface{}) { l.record(format, args...) }
func (l *recordingLogger) Errorf(format string, args ...interface{}) { l.record(format, args...) }
func (l *recordingLogger) Fatalf(format string, args ...interface{}) { l.record(format, args...) }
func (l *recordingLogger) Panicf(format string, args ...interface{}) { l.record(format, args...) }

func (l *recordingLogger) WithFields(fields lumber.Fields) lumber.Logger {
	merged := make(lumber.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{fields: merged, entries: l.entries}
}

type fixture struct {
	aws       string
	community string
	stdout    *bytes.Buffer
	planner   *Planner
}

func newFixture(t *testing.T, changed map[string][]string) *fixture {
	t.Helper()
	aws := testutils.NewCollection(t, "amazon", "aws", map[string]string{
		"plugins/modules/ec2_instance.py":       "from ..module_utils.ec2 import x\n",
		"plugins/modules/s3_bucket.py":          "import boto3\n",
		"plugins/module_utils/ec2.py":           "from .core import y\n",
		"plugins/module_utils/core.py":          "import boto3\n",
		testutils.Aliases("ec2"):               "cloud/aws\ntime=10m\n",
		testutils.Aliases("ec2_instance"):      "cloud/aws\nslow\n",
		testutils.Aliases("s3_bucket"):         "cloud/aws\n",
		testutils.Aliases("module_utils_core"): "cloud/aws\ntime=1m\n",
		testutils.Aliases("lookup_aws_ssm"):    "cloud/aws\n",
		testutils.Aliases("setup_ec2"):         "hidden\n",
	})
	community := testutils.NewCollection(t, "community", "aws", map[string]string{
		"plugins/modules/ec2_win_password.py": "from ansible_collections.amazon.aws.plugins.module_utils.ec2 import x\n",
		testutils.Aliases("ec2"):              "cloud/aws\n",
		testutils.Aliases("ec2_win_password"): "cloud/aws\n",
		testutils.Aliases("disabled_ec2"):     "ec2\ndisabled\n",
	})

	differ := fakeDiffer{}
	for name, files := range changed {
		switch name {
		case "amazon.aws":
			differ[aws] = files
		case "community.aws":
			differ[community] = files
		}
	}
	logger := lumber.NewNopLogger()
	stdout := new(bytes.Buffer)
	return &fixture{
		aws:       aws,
		community: community,
		stdout:    stdout,
		planner: New(differ,
			importtree.NewBuilder(pyimport.New(), logger),
			ghoutput.New("", stdout),
			logger),
	}
}

func (f *fixture) options() *Options {
	return &Options{
		Collections: []inputs.CollectionRef{
			{Path: f.aws, Ref: "main"},
			{Path: f.community, Ref: "main"},
		},
		TotalJobs: 2,
	}
}

func TestRunModuleChangeImpactsEveryCollection(t *testing.T) {
	f := newFixture(t, map[string][]string{"amazon.aws": {"plugins/modules/ec2.py"}})

	result, err := f.planner.Run(context.Background(), f.options())
	require.NoError(t, err)
	assert.Equal(t, ModeChanges, result.Mode)
	assert.Equal(t, []string{"ec2"}, result.TestPlan["amazon.aws"])
	assert.Equal(t, []string{"ec2"}, result.TestPlan["community.aws"])
	assert.Equal(t, "amazon.aws-1:ec2;community.aws-1:ec2", result.TestTargets)
	assert.Equal(t, "test_targets=amazon.aws-1:ec2;community.aws-1:ec2\n", f.stdout.String())
	assert.Equal(t, []string{"plugins/modules/ec2.py"}, result.Changes["amazon.aws"].Modules)
}

func TestRunLogsCarryRunID(t *testing.T) {
	f := newFixture(t, map[string][]string{"amazon.aws": {"plugins/modules/ec2.py"}})
	logger := newRecordingLogger()
	p := New(f.planner.differ, f.planner.builder, f.planner.output, logger)

	result, err := p.Run(context.Background(), f.options())
	require.NoError(t, err)

	detectorLines := 0
	for _, entry := range *logger.entries {
		assert.Equal(t, result.RunID, entry.fields["run_id"], entry.message)
		if strings.Contains(entry.message, "files changed against") {
			detectorLines++
		}
	}
	assert.Equal(t, 2, detectorLines)
}

func TestRunModuleUtilsChange(t *testing.T) {
	f := newFixture(t, map[string][]string{
		"amazon.aws": {"plugins/module_utils/core.py", "plugins/lookup/aws_ssm.py"},
	})

	result, err := f.planner.Run(context.Background(), f.options())
	require.NoError(t, err)
	assert.Equal(t, []string{"module_utils_core", "ec2_instance", "lookup_aws_ssm"}, result.TestPlan["amazon.aws"])
	assert.Empty(t, result.TestPlan["community.aws"])
	assert.Equal(t, "amazon.aws-1:ec2_instance;amazon.aws-2:lookup_aws_ssm,module_utils_core", result.TestTargets)
}

func TestRunCrossCollectionUtility(t *testing.T) {
	f := newFixture(t, map[string][]string{"amazon.aws": {"plugins/module_utils/ec2.py"}})

	result, err := f.planner.Run(context.Background(), f.options())
	require.NoError(t, err)
	assert.Equal(t, []string{"ec2_instance"}, result.TestPlan["amazon.aws"])
	// community.aws modules import amazon.aws utilities directly
	assert.Equal(t, []string{"ec2_win_password"}, result.TestPlan["community.aws"])
}

func TestRunTargetAndRoleChanges(t *testing.T) {
	f := newFixture(t, map[string][]string{
		"community.aws": {
			"tests/integration/targets/setup_ec2/tasks/main.yml",
			"roles/s3_bucket/tasks/main.yml",
		},
	})

	result, err := f.planner.Run(context.Background(), f.options())
	require.NoError(t, err)
	assert.Equal(t, []string{"setup_ec2", "s3_bucket"}, result.TestPlan["amazon.aws"])
	assert.Equal(t, []string{"setup_ec2"}, result.Changes["community.aws"].Targets)
}

func TestRunTestAll(t *testing.T) {
	f := newFixture(t, nil)
	opts := f.options()
	opts.TestAll = true

	result, err := f.planner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, ModeTestAll, result.Mode)
	assert.Equal(t, []string{"ec2", "ec2_instance", "lookup_aws_ssm", "module_utils_core", "s3_bucket"},
		result.TestPlan["amazon.aws"])
	assert.Equal(t, []string{"ec2", "ec2_win_password"}, result.TestPlan["community.aws"])
	assert.Nil(t, result.Changes)
}

func TestRunTargetsToTestOverridesEverything(t *testing.T) {
	f := newFixture(t, map[string][]string{"amazon.aws": {"plugins/modules/ec2.py"}})
	opts := f.options()
	opts.TestAll = true
	opts.PRBody = "Some description\nTargetsToTest=community.aws:ec2_win_password,disabled_ec2;other.col:x"

	result, err := f.planner.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, ModeTargetsToTest, result.Mode)
	assert.Empty(t, result.TestPlan["amazon.aws"])
	assert.Equal(t, []string{"ec2_win_password"}, result.TestPlan["community.aws"])
	assert.Equal(t, "community.aws-1:ec2_win_password", result.TestTargets)
}

func TestRunNoChanges(t *testing.T) {
	f := newFixture(t, nil)

	result, err := f.planner.Run(context.Background(), f.options())
	require.NoError(t, err)
	assert.Empty(t, result.Batches)
	assert.Equal(t, "test_targets=\n", f.stdout.String())
}

func TestRunInvalidOptions(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.planner.Run(context.Background(), &Options{TotalJobs: 1})
	assert.ErrorIs(t, err, errs.ErrMissingCollections)

	opts := f.options()
	opts.TotalJobs = 0
	_, err = f.planner.Run(context.Background(), opts)
	var cfgErr *errs.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, f.stdout.String())
}

func TestSummaryIncludesBatches(t *testing.T) {
	f := newFixture(t, map[string][]string{"amazon.aws": {"plugins/modules/ec2.py"}})

	result, err := f.planner.Run(context.Background(), f.options())
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, []core.Batch{
		{Slot: "amazon.aws-1", Targets: []string{"ec2"}, Total: 600},
		{Slot: "community.aws-1", Targets: []string{"ec2"}, Total: 180},
	}, result.Batches)
}
