package cmd

import (
	"github.com/ansible-network/github-actions/config"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/ghoutput"
	"github.com/ansible-network/github-actions/pkg/requestutils"
	"github.com/ansible-network/github-actions/pkg/resolveref"
	"github.com/spf13/cobra"
)

func resolveRefCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve-ref",
		Short: "Output the merge commit of the pull request named by a Depends-On: line",
		RunE:  runResolveRef,
	}
	attachResolveRefFlags(cmd)
	return cmd
}

func runResolveRef(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return errs.ConfigWrap(err, "failed to load config")
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	resolver := resolveref.New(requestutils.New(cfg.GitHub.Timeout, logger), logger)
	err = resolver.Run(cmd.Context(), &resolveref.Options{
		PRBody:     cfg.ResolveRef.PRBody,
		Repository: cfg.ResolveRef.Repository,
		Token:      cfg.GitHub.Token,
		APIURL:     cfg.GitHub.APIURL,
	}, ghoutput.New(cfg.OutputFile, cmd.OutOrStdout()))
	if err != nil {
		logger.Errorf("resolve-ref failed: %v", err)
	}
	return err
}
