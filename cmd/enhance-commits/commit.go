package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commitDryRun bool

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Enhance the message of the latest commit",
	Long: `Summarise HEAD, generate a detailed commit message and amend the
commit with it. With --dry-run the message is printed and the repository is
left untouched.`,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().BoolVar(&commitDryRun, "dry-run", false, "print the enhanced message without amending or pushing")
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}

	outcome, err := a.commitFlow(commitDryRun).Run(ctx)
	if err != nil {
		return err
	}

	if commitDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), outcome.Enhanced)
		return nil
	}

	logger.WithField("sha", outcome.SHA).Info("Commit message enhanced successfully")
	return nil
}
