package cmd

import (
	"errors"
	"log"
	"path/filepath"

	"github.com/ansible-network/github-actions/config"
	"github.com/ansible-network/github-actions/pkg/constants"
	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/ghoutput"
	"github.com/ansible-network/github-actions/pkg/gitdiff"
	"github.com/ansible-network/github-actions/pkg/importtree"
	"github.com/ansible-network/github-actions/pkg/inputs"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/ansible-network/github-actions/pkg/planner"
	"github.com/ansible-network/github-actions/pkg/pyimport"
	"github.com/spf13/cobra"
)

// exit codes
const (
	ExitFailure       = 1
	ExitConfigError   = 2
	ExitCommandFailed = 3
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use: constants.BinaryName,
		Long: `ansible-ci selects the integration targets impacted by a change to Ansible collections
and splits them over parallel CI jobs. Without a sub command it runs targets.`,
		Version:       constants.BinaryVersion,
		RunE:          runTargets,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)
	attachTargetsFlags(&rootCmd)

	rootCmd.AddCommand(targetsCommand(), resolveRefCommand(), versionCommand())
	return &rootCmd
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	var cfgErr *errs.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	var cmdErr *errs.CommandError
	if errors.As(err, &cmdErr) {
		return ExitCommandFailed
	}
	return ExitFailure
}

func targetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the integration targets impacted by the changes and split them into jobs",
		RunE:  runTargets,
	}
	attachTargetsFlags(cmd)
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(constants.BinaryVersion)
		},
	}
}

func newLogger(cfg *config.Config) (lumber.Logger, error) {
	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.EnableFile = true
		cfg.LogConfig.FileLocation = filepath.Clean(cfg.LogFile)
	}
	instance := lumber.InstanceZapLogger
	if cfg.Logger == "logrus" {
		instance = lumber.InstanceLogrusLogger
	}
	logger, err := lumber.NewLogger(&cfg.LogConfig, cfg.Verbose, instance)
	if err != nil {
		log.Printf("could not instantiate logger %s", err.Error())
		return nil, err
	}
	return logger, nil
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return errs.ConfigWrap(err, "failed to load config")
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	collections, err := inputs.ParseCollections(cfg.Collections)
	if err != nil {
		logger.Errorf("invalid collections: %v", err)
		return err
	}

	var differ core.Differ
	if cfg.DiffFile != "" {
		differ = gitdiff.NewPatch(cfg.DiffFile, logger)
	} else {
		differ = gitdiff.NewGit(cfg.GitRemote, logger)
	}
	p := planner.New(differ,
		importtree.NewBuilder(pyimport.New(), logger),
		ghoutput.New(cfg.OutputFile, cmd.OutOrStdout()),
		logger)

	_, err = p.Run(cmd.Context(), &planner.Options{
		Collections: collections,
		TotalJobs:   inputs.ParseTotalJobs(cfg.TotalJobs),
		TestAll:     inputs.ParseTestAll(cfg.TestAll),
		PRBody:      cfg.PRBody,
	})
	if err != nil {
		logger.Errorf("targets failed: %v", err)
	}
	return err
}
