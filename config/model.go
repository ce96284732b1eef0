package config

import (
	"time"

	"github.com/ansible-network/github-actions/pkg/lumber"
)

type (
	// ConfigWrapper is a wrapper for the config
	ConfigWrapper struct {
		Config `mapstructure:"data"`
	}

	// Config the application's configuration
	Config struct {
		// Collections path:ref items, separated by commas or new lines.
		Collections string
		// TotalJobs is kept raw, anything but a positive number means the default.
		TotalJobs string
		TestAll   string
		PRBody    string
		// OutputFile is the GITHUB_OUTPUT file, stdout when empty.
		OutputFile string
		GitRemote  string
		// DiffFile unified diff to read the changes from instead of git.
		DiffFile   string
		ResolveRef ResolveRefConfig
		GitHub     GitHubConfig
		LogFile    string
		LogConfig  lumber.LoggingConfig
		// Logger backend, zap or logrus.
		Logger  string
		Verbose bool
	}

	// ResolveRefConfig holds the inputs of the resolve-ref command.
	ResolveRefConfig struct {
		PRBody     string
		Repository string
	}

	// GitHubConfig configures the GitHub REST API client.
	GitHubConfig struct {
		// Token sent as a bearer token, optional for public repositories.
		Token string
		// APIURL GitHub REST API base URL
		APIURL string
		// Timeout of a single API call
		Timeout time.Duration
	}
)
