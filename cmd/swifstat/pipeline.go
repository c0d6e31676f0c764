package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mgignac/swifstat/internal/config"
	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/filter"
	"github.com/mgignac/swifstat/internal/swif"
)

// resolveWorkflows turns positional arguments, or the configured basename
// and explicit workflows, into the filtered sequence to query. An empty
// result is not an error.
func resolveWorkflows(cfg config.Config, args []string) ([]discovery.Workflow, error) {
	basename, count := cfg.Basename, cfg.Count
	switch len(args) {
	case 0:
	case 2:
		if len(cfg.Workflows) > 0 {
			return nil, fmt.Errorf("use either <basename> <count> or --workflow, not both")
		}
		n, err := parseCount(args[1])
		if err != nil {
			return nil, err
		}
		basename, count = args[0], n
	default:
		return nil, fmt.Errorf("expected <basename> <count>, got %d arguments", len(args))
	}

	var (
		workflows []discovery.Workflow
		err       error
	)
	switch {
	case len(cfg.Workflows) > 0:
		workflows, err = discovery.Explicit(cfg.Workflows)
	case strings.TrimSpace(basename) != "":
		workflows, err = discovery.Names(basename, count)
	default:
		return nil, fmt.Errorf("no workflows specified; pass <basename> <count> or --workflow")
	}
	if err != nil {
		if errors.Is(err, discovery.ErrNoWorkflows) {
			return nil, nil
		}
		return nil, err
	}

	include, err := filter.Compile(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := filter.Compile(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return filter.Workflows(workflows, include, exclude), nil
}

func parseCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid workflow count %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid workflow count %q: must not be negative", raw)
	}
	return n, nil
}

// newFetcher reads captures when --from-dir is set and runs swif2 otherwise.
func newFetcher(cfg config.Config, logger *zap.Logger) swif.Fetcher {
	if cfg.FromDir != "" {
		return swif.Dir{Root: cfg.FromDir}
	}
	return swif.NewClient(swif.Options{
		Binary:    cfg.SwifBin,
		Timeout:   cfg.Timeout,
		Logger:    logger,
		TailLines: 20,
	})
}
