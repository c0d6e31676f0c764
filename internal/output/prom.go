package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/report"
)

// PromRenderer writes summaries in the Prometheus text exposition format,
// suitable for a node_exporter textfile collector.
type PromRenderer struct {
	out io.Writer
}

// NewProm creates a Prometheus renderer writing to out.
func NewProm(out io.Writer) *PromRenderer {
	return &PromRenderer{out: out}
}

type summaryCollectors struct {
	totals    *prometheus.GaugeVec
	census    *prometheus.GaugeVec
	overall   *prometheus.GaugeVec
	rates     *prometheus.GaugeVec
	counts    *prometheus.GaugeVec
	requested prometheus.Gauge
	queried   prometheus.Gauge
}

func newSummaryCollectors(reg *prometheus.Registry) (*summaryCollectors, error) {
	c := &summaryCollectors{
		totals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swif_field_total",
			Help: "Sum of a swif2 status field across queried workflows",
		}, []string{"field"}),
		census: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swif_problem_type_workflows",
			Help: "Number of workflows reporting a problem type",
		}, []string{"type"}),
		overall: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swif_overall_rate_percent",
			Help: "Completion, success and failure percentage across all queried workflows",
		}, []string{"kind"}),
		rates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swif_workflow_rate_percent",
			Help: "Completion, success and failure percentage of one workflow",
		}, []string{"workflow", "kind"}),
		counts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swif_workflow_jobs",
			Help: "Job counts of one workflow",
		}, []string{"workflow", "index", "state"}),
		requested: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "swif_workflows_requested",
			Help: "Number of workflows the run tried to query",
		}),
		queried: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "swif_workflows_queried",
			Help: "Number of workflows whose status was fetched",
		}),
	}
	for _, collector := range []prometheus.Collector{c.totals, c.census, c.overall, c.rates, c.counts, c.requested, c.queried} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return c, nil
}

// RenderSummary writes the summary as gauges. Rates without jobs are
// omitted rather than exported as zero.
func (p *PromRenderer) RenderSummary(s report.Summary) error {
	reg := prometheus.NewRegistry()
	c, err := newSummaryCollectors(reg)
	if err != nil {
		return err
	}

	for _, ft := range s.Totals {
		c.totals.WithLabelValues(ft.Field.String()).Set(float64(ft.Value))
	}
	for _, pc := range s.ProblemTypes {
		c.census.WithLabelValues(pc.Label).Set(float64(pc.Workflows))
	}
	if s.Overall != nil {
		setRates(c.overall, s.Overall)
	}
	for _, row := range s.Workflows {
		idx := strconv.Itoa(row.Index)
		c.counts.WithLabelValues(row.Name, idx, "jobs").Set(float64(row.Jobs))
		c.counts.WithLabelValues(row.Name, idx, "succeeded").Set(float64(row.Succeeded))
		c.counts.WithLabelValues(row.Name, idx, "problems").Set(float64(row.Problems))
		if row.Rates != nil {
			setRates(c.rates, row.Rates, row.Name)
		}
	}
	c.requested.Set(float64(s.Requested))
	c.queried.Set(float64(s.Queried))

	return p.write(reg)
}

// setRates sets the three kind-labelled gauges of vec; labels precede kind.
func setRates(vec *prometheus.GaugeVec, rates *report.Rates, labels ...string) {
	set := func(kind string, v float64) {
		vec.WithLabelValues(append(append([]string{}, labels...), kind)...).Set(v)
	}
	set("completion", rates.Completion)
	set("success", rates.Success)
	set("failure", rates.Failure)
}

// RenderList exports one info gauge per workflow.
func (p *PromRenderer) RenderList(workflows []discovery.Workflow) error {
	reg := prometheus.NewRegistry()
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "swif_workflow_info",
		Help: "Workflows selected for querying",
	}, []string{"workflow", "index"})
	if err := reg.Register(info); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	for _, wf := range workflows {
		info.WithLabelValues(wf.Name, strconv.Itoa(wf.Index)).Set(1)
	}
	return p.write(reg)
}

func (p *PromRenderer) write(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(p.out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
