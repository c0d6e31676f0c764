package runner

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/mgignac/swifstat/internal/aggregate"
	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/report"
	"github.com/mgignac/swifstat/internal/status"
	"github.com/mgignac/swifstat/internal/swif"
)

// Options configure how the runner queries workflows.
type Options struct {
	Fetcher  swif.Fetcher
	Logger   *zap.Logger
	Parallel int
	// Raw receives each fetched report verbatim when set.
	Raw    io.Writer
	Fields []status.Field
}

// Runner queries a sequence of workflows and aggregates their status.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = swif.NewClient(swif.Options{Logger: opts.Logger})
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if len(opts.Fields) == 0 {
		opts.Fields = status.TrackedFields()
	}
	return &Runner{opts: opts}
}

type fetched struct {
	pos int
	wf  discovery.Workflow
	res swif.Result
}

// Run fetches every workflow and folds the reports in the order given. A
// failed fetch is recorded as skipped and never stops the run.
func (r *Runner) Run(ctx context.Context, workflows []discovery.Workflow) report.Summary {
	r.opts.Logger.Info("querying workflows",
		zap.Int("workflows", len(workflows)),
		zap.Int("parallel", r.opts.Parallel))

	var results []fetched
	if r.opts.Parallel > 1 && len(workflows) > 1 {
		results = r.fetchParallel(ctx, workflows)
	} else {
		results = r.fetchSequential(ctx, workflows)
	}

	agg := aggregate.New(r.opts.Fields)
	for _, f := range results {
		if !f.res.OK() {
			r.opts.Logger.Warn("could not get workflow status",
				zap.String("workflow", f.wf.Name),
				zap.Error(f.res.Err))
			agg.Skip(f.wf.Index, f.wf.Name, f.res.Err)
			continue
		}
		if r.opts.Raw != nil {
			fmt.Fprintf(r.opts.Raw, "=== %s ===\n%s\n", f.wf.Name, f.res.Text)
		}
		parsed := status.Parse(f.res.Text)
		agg.Add(f.wf.Index, f.wf.Name, parsed)
		r.opts.Logger.Debug("folded workflow status",
			zap.String("workflow", f.wf.Name),
			zap.Int("fields", len(parsed)),
			zap.Int("queried", agg.Queried()))
		if unknown := parsed.Unknown(); len(unknown) > 0 {
			r.opts.Logger.Debug("unrecognised status fields",
				zap.String("workflow", f.wf.Name),
				zap.Strings("fields", unknown))
		}
	}

	summary := agg.Summary()
	r.opts.Logger.Info("workflow query complete",
		zap.Int("queried", summary.Queried),
		zap.Int("requested", summary.Requested))
	return summary
}

func (r *Runner) fetchSequential(ctx context.Context, workflows []discovery.Workflow) []fetched {
	results := make([]fetched, 0, len(workflows))
	for i, wf := range workflows {
		results = append(results, fetched{pos: i, wf: wf, res: r.fetchOne(ctx, wf)})
	}
	return results
}

func (r *Runner) fetchParallel(ctx context.Context, workflows []discovery.Workflow) []fetched {
	p := pool.NewWithResults[fetched]().
		WithContext(ctx).
		WithMaxGoroutines(r.opts.Parallel)
	for i, wf := range workflows {
		i, wf := i, wf
		p.Go(func(ctx context.Context) (fetched, error) {
			return fetched{pos: i, wf: wf, res: r.fetchOne(ctx, wf)}, nil
		})
	}
	// Tasks never return an error, so every workflow has a result.
	results, _ := p.Wait()
	sort.Slice(results, func(a, b int) bool {
		return results[a].pos < results[b].pos
	})
	return results
}

func (r *Runner) fetchOne(ctx context.Context, wf discovery.Workflow) swif.Result {
	if err := ctx.Err(); err != nil {
		return swif.Result{Workflow: wf.Name, Err: fmt.Errorf("query %s: %w", wf.Name, err)}
	}
	return r.opts.Fetcher.Fetch(ctx, wf.Name)
}
