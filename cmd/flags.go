package cmd

import (
	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches the flags shared by every command
func AttachCLIFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path, ./"+constants.DefaultConfigName+".yml when omitted")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logs")
	rootCmd.PersistentFlags().String("log-file", "", "also write json logs to this file")
	rootCmd.PersistentFlags().String("logger", "zap", "logger backend, zap or logrus")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "append outputs to this file instead of stdout [GITHUB_OUTPUT]")
	rootCmd.PersistentFlags().String("github-api-url", constants.DefaultGitHubAPIURL, "GitHub REST API base URL [GITHUB_API_URL]")
}

// attachTargetsFlags attaches the flags of the targets command
func attachTargetsFlags(cmd *cobra.Command) {
	cmd.Flags().String("collections", "", "path:ref of the collections to test, comma or new line separated [COLLECTIONS_TO_TEST]")
	cmd.Flags().String("total-jobs", "", "number of parallel jobs to split targets over [TOTAL_JOBS]")
	cmd.Flags().String("test-all", "", "test every target of every collection [ANSIBLE_TEST_ALL_THE_TARGETS]")
	cmd.Flags().Lookup("test-all").NoOptDefVal = "true"
	cmd.Flags().String("pr-body", "", "pull request description, read for TargetsToTest= [PULL_REQUEST_BODY]")
	cmd.Flags().String("git-remote", constants.DefaultGitRemote, "remote the base refs belong to [GIT_REMOTE]")
	cmd.Flags().String("diff-file", "", "read the changes from this unified diff instead of git [DIFF_FILE]")
}

// attachResolveRefFlags attaches the flags of the resolve-ref command
func attachResolveRefFlags(cmd *cobra.Command) {
	cmd.Flags().String("pr-body", "", "pull request description, read for Depends-On: [RESOLVE_REF_PR_BODY]")
	cmd.Flags().String("repository", "", "owner/name of the repository to resolve [RESOLVE_REF_REPOSITORY]")
}
