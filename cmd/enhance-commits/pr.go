package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/enhance-commits/internal/config"
)

var prDryRun bool

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Enhance the description of the triggering pull request",
	Long: `Read the pull_request event payload, diff its base and head commits and
replace the description with a generated one. Unlike "run", failures are
reported as errors. With --dry-run the description is printed instead.`,
	RunE: runPR,
}

func init() {
	prCmd.Flags().BoolVar(&prDryRun, "dry-run", false, "print the enhanced description without calling the GitHub API")
}

func runPR(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env := config.LoadActionsEnv()
	if !env.IsPullRequest() {
		logger.WithField("event", env.EventName).Info("Not a pull_request event, nothing to do")
		return nil
	}

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}

	flow, err := a.prFlow(env, prDryRun)
	if err != nil {
		return err
	}

	outcome, err := flow.Update(ctx)
	if err != nil {
		return err
	}

	if prDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), outcome.Enhanced)
		return nil
	}

	logger.WithField("number", outcome.Number).Info("PR description updated")
	return nil
}
