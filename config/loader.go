package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ansible-network/github-actions/pkg/constants"
)

// binding ties a config key to the cli flag and the environment variables
// setting it. Flags win over environment variables.
type binding struct {
	key  string
	flag string
	envs []string
}

var globalBindings = []binding{
	{key: "Data.Verbose", flag: "verbose"},
	{key: "Data.LogFile", flag: "log-file"},
	{key: "Data.Logger", flag: "logger"},
	{key: "Data.OutputFile", flag: "output-file", envs: []string{"GITHUB_OUTPUT"}},
	{key: "Data.GitHub.Token", envs: []string{"GITHUB_TOKEN"}},
	{key: "Data.GitHub.APIURL", flag: "github-api-url", envs: []string{"GITHUB_API_URL"}},
}

var targetsBindings = []binding{
	{key: "Data.Collections", flag: "collections", envs: []string{"COLLECTIONS_TO_TEST"}},
	{key: "Data.TotalJobs", flag: "total-jobs", envs: []string{"TOTAL_JOBS"}},
	{key: "Data.TestAll", flag: "test-all", envs: []string{"ANSIBLE_TEST_ALL_THE_TARGETS"}},
	{key: "Data.PRBody", flag: "pr-body", envs: []string{"PULL_REQUEST_BODY"}},
	{key: "Data.GitRemote", flag: "git-remote", envs: []string{"GIT_REMOTE"}},
	{key: "Data.DiffFile", flag: "diff-file", envs: []string{"DIFF_FILE"}},
}

// bindings per command name, the root command runs targets
var commandBindings = map[string][]binding{
	constants.BinaryName: targetsBindings,
	"targets":            targetsBindings,
	"resolve-ref": {
		{key: "Data.ResolveRef.PRBody", flag: "pr-body", envs: []string{"RESOLVE_REF_PR_BODY"}},
		{key: "Data.ResolveRef.Repository", flag: "repository", envs: []string{"RESOLVE_REF_REPOSITORY"}},
	},
}

// Load loads config from command instance to predefined config variables
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	// default viper configs
	v.SetEnvPrefix("ANSIBLE_CI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// set default configs
	setDefaultConfig(v)

	bindings := append(append([]binding{}, globalBindings...), commandBindings[cmd.Name()]...)
	for _, b := range bindings {
		if err := bind(v, cmd, b); err != nil {
			return nil, err
		}
	}

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	} else {
		v.SetConfigName(constants.DefaultConfigName)
		v.AddConfigPath("./")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	return populateConfig(v, new(ConfigWrapper))
}

func bind(v *viper.Viper, cmd *cobra.Command, b binding) error {
	if len(b.envs) > 0 {
		args := append([]string{b.key}, b.envs...)
		if err := v.BindEnv(args...); err != nil {
			return errors.Wrapf(err, "failed to bind %s environment", b.key)
		}
	}
	if b.flag == "" {
		return nil
	}
	if flag := cmd.Flags().Lookup(b.flag); flag != nil {
		if err := v.BindPFlag(b.key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", b.flag)
		}
	}
	return nil
}

func populateConfig(v *viper.Viper, wrapper *ConfigWrapper) (*Config, error) {
	if err := v.Unmarshal(wrapper); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return &wrapper.Config, nil
}
