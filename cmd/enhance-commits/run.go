package main

import (
	"github.com/spf13/cobra"

	"github.com/rohankatakam/enhance-commits/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enhance the PR description (on pull_request events) and the latest commit",
	Long: `Run the full CI step.

On a pull_request event the pull request description is regenerated first.
That step is best effort: its failures are logged and never fail the run.
The latest commit message is then rewritten and force-pushed. A failure
there exits non-zero.`,
	RunE: runEnhance,
}

func runEnhance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}

	env := config.LoadActionsEnv()
	if env.IsPullRequest() {
		flow, err := a.prFlow(env, false)
		if err != nil {
			logger.WithError(err).Error("Skipping PR description update")
		} else if flow.Run(ctx) {
			logger.Info("PR description updated")
		}
	}

	outcome, err := a.commitFlow(false).Run(ctx)
	if err != nil {
		return err
	}

	logger.WithField("sha", outcome.SHA).Info("Commit message enhanced successfully")
	return nil
}
