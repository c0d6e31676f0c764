package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mgignac/swifstat/internal/output"
	"github.com/mgignac/swifstat/internal/runner"
	"github.com/mgignac/swifstat/internal/status"
	"github.com/mgignac/swifstat/internal/swif"
)

func newSummaryCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [<basename> <count>]",
		Short: "Query each workflow and print aggregate totals and rates",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, state, args)
		},
	}
}

func runSummary(cmd *cobra.Command, state *cliState, args []string) error {
	cfg := state.cfg

	workflows, err := resolveWorkflows(cfg, args)
	if err != nil {
		return err
	}
	renderer, err := output.New(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fields, err := status.ParseFields(cfg.Fields)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runner.Options{
		Fetcher:  newFetcher(cfg, state.logger),
		Logger:   state.logger,
		Parallel: cfg.Parallel,
		Fields:   fields,
	}
	if cfg.Verbose {
		opts.Raw = cmd.ErrOrStderr()
	}
	summary := runner.New(opts).Run(ctx, workflows)
	for _, sk := range summary.Skipped {
		if swif.Missing(sk.Err) {
			state.logger.Error("swif2 is not installed; set --swif-bin or use --from-dir",
				zap.String("swif_bin", cfg.SwifBin))
			break
		}
	}

	return renderer.RenderSummary(summary)
}
