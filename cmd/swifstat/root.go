package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mgignac/swifstat/internal/config"
)

// cliState is filled in before any subcommand runs.
type cliState struct {
	cfg    config.Config
	root   string
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "swifstat",
		Short:         "Swifstat summarises the status of a sequence of swif2 workflows",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine working directory: %w", err)
			}
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("parse --config: %w", err)
			}
			cfg, err := config.Load(root, path, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Verbose)
			if err != nil {
				return err
			}
			state.cfg, state.root, state.logger = cfg, root, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = state.logger.Sync()
		},
	}

	def := config.Default()
	persistent := cmd.PersistentFlags()
	persistent.String("config", "", "config file (default ./"+config.FileName+")")
	persistent.String("format", def.Format, "output format (pretty|json|yaml|prom)")
	persistent.BoolP("verbose", "v", false, "dump each raw status report and log at debug level")
	persistent.String("log-level", def.LogLevel, "log level (debug|info|warn|error)")
	persistent.Int("parallel", def.Parallel, "number of workflows queried concurrently")
	persistent.Duration("timeout", def.Timeout, "time limit for a single status query")
	persistent.String("swif-bin", def.SwifBin, "swif2 executable")
	persistent.String("from-dir", "", "read <workflow>.txt captures from this directory instead of running swif2")
	persistent.StringArray("workflow", nil, "workflow to query instead of <basename> <count> (repeatable)")
	persistent.StringArray("include", nil, "only query matching workflows (substring or /regex/)")
	persistent.StringArray("exclude", nil, "skip matching workflows (substring or /regex/)")
	persistent.StringArray("field", nil, "restrict totals to these status fields (repeatable)")

	cmd.AddCommand(newSummaryCmd(state))
	cmd.AddCommand(newListCmd(state))

	return cmd
}
