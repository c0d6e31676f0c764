package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgignac/swifstat/internal/config"
	"github.com/mgignac/swifstat/internal/output"
)

func newListCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "list [<basename> <count>]",
		Short: "List the workflows a summary would query",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, state, args)
		},
	}
}

func runList(cmd *cobra.Command, state *cliState, args []string) error {
	cfg := state.cfg

	workflows, err := resolveWorkflows(cfg, args)
	if err != nil {
		return err
	}
	if len(workflows) == 0 && cfg.Format == config.FormatPretty {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching workflows")
		return nil
	}

	renderer, err := output.New(cfg.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderList(workflows)
}
