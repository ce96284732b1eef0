package constants

// BinaryVersion is the version of the binary, set at build time.
var BinaryVersion = "dev"

const (
	// BinaryName is the name of the cli binary.
	BinaryName = "ansible-ci"
	// DefaultConfigName config file name looked up in the working directory.
	DefaultConfigName = ".ansible-ci"
	// DefaultTotalJobs number of job slots used when TOTAL_JOBS is unset or invalid.
	DefaultTotalJobs = 3
	// DefaultGitRemote remote the base ref is resolved against.
	DefaultGitRemote = "origin"
	// DefaultGitHubAPIURL GitHub REST API base URL.
	DefaultGitHubAPIURL = "https://api.github.com"
	// DefaultHTTPTimeout timeout of a single GitHub API call, in seconds.
	DefaultHTTPTimeout = 30
	// DefaultLogFile log file used when file logging is enabled.
	DefaultLogFile = "./ansible-ci.log"
)

const (
	// GalaxyFileName collection manifest file.
	GalaxyFileName = "galaxy.yml"
	// CollectionsNamespace python namespace all collections live in.
	CollectionsNamespace = "ansible_collections"
	// AliasesFileName per target metadata file.
	AliasesFileName = "aliases"
)

// execution time in seconds of an integration target
const (
	RegularTargetTime = 180
	SlowTargetTime    = 3000
)

// target directives
const (
	DirectiveSlow        = "slow"
	DirectiveDisabled    = "disabled"
	DirectiveUnstable    = "unstable"
	DirectiveUnsupported = "unsupported"
	DirectiveHidden      = "hidden"
)

// collection relative paths used to classify changed files
const (
	ModulesPath        = "plugins/modules/"
	InventoryPath      = "plugins/inventory/"
	ConnectionPath     = "plugins/connection/"
	LookupPath         = "plugins/lookup/"
	ModuleUtilsPath    = "plugins/module_utils/"
	PluginUtilsPath    = "plugins/plugin_utils/"
	RolesPath          = "roles/"
	IntegrationTargets = "tests/integration/targets/"
)

// python sub packages of a collection plugins package
const (
	ModulesPackage     = "modules"
	ModuleUtilsPackage = "module_utils"
	PluginUtilsPackage = "plugin_utils"
)

// target name prefixes derived from the plugin kind of a change
const (
	InventoryTargetPrefix   = "inventory_"
	ConnectionTargetPrefix  = "connection_"
	ModuleUtilsTargetPrefix = "module_utils_"
	PluginUtilsTargetPrefix = "plugin_utils_"
	LookupTargetPrefix      = "lookup_"
)

// CI output keys
const (
	TestTargetsOutputKey    = "test_targets"
	MergeCommitSHAOutputKey = "merge_commit_sha"
)

const (
	// SlotDelimiter separates slots in the test_targets output.
	SlotDelimiter = ";"
	// SlotTargetsDelimiter separates the slot label from its targets.
	SlotTargetsDelimiter = ":"
	// TargetsDelimiter separates targets of a slot.
	TargetsDelimiter = ","
)
