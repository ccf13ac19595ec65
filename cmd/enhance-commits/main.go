package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/enhance-commits/internal/config"
	"github.com/rohankatakam/enhance-commits/internal/errors"
	"github.com/rohankatakam/enhance-commits/internal/logging"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	runID   string
	logger  *logrus.Entry
	cfg     *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var detailed *errors.Error
		if verbose && stderrors.As(err, &detailed) {
			fmt.Fprintln(os.Stderr, detailed.DetailedString())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "enhance-commits",
	Short: "Rewrite commit messages and PR descriptions from their diffs",
	Long: `enhance-commits summarises the latest commit (changed files, affected
areas, sampled diffs and branch history), asks a language model for a
detailed message with a short summary line and bulleted changes, and amends
the commit with it.

On pull_request events it also regenerates the pull request description
from the combined diff. Without a subcommand it behaves like "run".`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		base := logrus.New()
		base.SetOutput(os.Stderr)
		if verbose {
			base.SetLevel(logrus.DebugLevel)
		} else {
			base.SetLevel(logrus.InfoLevel)
		}
		runID = uuid.NewString()
		logger = base.WithField("run_id", runID)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		return initLogging(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
	RunE: runEnhance,
}

// initLogging installs the slog default used by the internal packages,
// tagged with the same run id as the command logger.
func initLogging(lc config.LogConfig) error {
	logCfg := logging.DefaultConfig(verbose)
	if !verbose {
		logCfg.Level = logging.ParseLevel(lc.Level)
		if lc.Format != "" {
			logCfg.Format = logging.Format(lc.Format)
		}
	}
	logCfg.OutputFile = lc.File

	l, err := logging.Initialize(logCfg)
	if err != nil {
		return err
	}
	slog.SetDefault(l.With("run_id", runID))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .enhance-commits/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`enhance-commits {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(configureCmd)
}
