package config

import (
	"strconv"
	"time"

	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/spf13/viper"
)

func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("Data.LogConfig.EnableConsole", true)
	v.SetDefault("Data.LogConfig.ConsoleJSONFormat", false)
	v.SetDefault("Data.LogConfig.ConsoleLevel", "info")
	v.SetDefault("Data.LogConfig.EnableFile", false)
	v.SetDefault("Data.LogConfig.FileJSONFormat", true)
	v.SetDefault("Data.LogConfig.FileLevel", "debug")
	v.SetDefault("Data.LogConfig.FileLocation", constants.DefaultLogFile)
	v.SetDefault("Data.Logger", "zap")
	v.SetDefault("Data.Verbose", false)
	v.SetDefault("Data.TotalJobs", strconv.Itoa(constants.DefaultTotalJobs))
	v.SetDefault("Data.GitRemote", constants.DefaultGitRemote)
	v.SetDefault("Data.GitHub.APIURL", constants.DefaultGitHubAPIURL)
	v.SetDefault("Data.GitHub.Timeout", constants.DefaultHTTPTimeout*time.Second)
}
