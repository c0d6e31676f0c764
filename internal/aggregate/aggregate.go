// Package aggregate folds per-workflow status reports into run totals.
package aggregate

import (
	"errors"
	"sort"

	"github.com/mgignac/swifstat/internal/report"
	"github.com/mgignac/swifstat/internal/status"
)

// Aggregator accumulates the state of one run. It is not safe for concurrent
// use; parallel callers either serialise Add or fold into separate
// aggregators and Merge them.
type Aggregator struct {
	fields    []status.Field
	summed    []status.Field
	sums      map[status.Field]int64
	census    map[string]int
	snapshots []report.Snapshot
	skipped   []report.Skipped
}

// rateFields feed the overall rates and are summed whether or not they are
// displayed.
var rateFields = []status.Field{status.Jobs, status.Succeeded, status.Problems}

// New returns an empty aggregator totalling fields. A nil or empty fields
// list selects status.TrackedFields. Jobs, succeeded and problems are always
// summed for the overall rates but only appear in totals when listed.
func New(fields []status.Field) *Aggregator {
	if len(fields) == 0 {
		fields = status.TrackedFields()
	}
	a := &Aggregator{
		fields: append([]status.Field{}, fields...),
		sums:   make(map[status.Field]int64, len(fields)+len(rateFields)),
		census: make(map[string]int),
	}
	for _, f := range append(append([]status.Field{}, fields...), rateFields...) {
		if _, ok := a.sums[f]; ok {
			continue
		}
		a.sums[f] = 0
		a.summed = append(a.summed, f)
	}
	return a
}

// Add folds a successfully fetched report for the workflow at index.
// Absent or non-numeric fields are left out of the sums; the workflow always
// gets a snapshot.
func (a *Aggregator) Add(index int, name string, r status.Report) {
	for _, f := range a.summed {
		if v, ok := r.Int(f); ok {
			a.sums[f] += v
		}
	}

	snap := report.Snapshot{Index: index, Name: name}
	snap.Jobs, _ = r.Int(status.Jobs)
	snap.Succeeded, _ = r.Int(status.Succeeded)
	snap.Problems, _ = r.Int(status.Problems)
	snap.ID, _ = r.Lookup(status.WorkflowID)
	snap.User, _ = r.Lookup(status.WorkflowUser)
	a.snapshots = append(a.snapshots, snap)

	for _, label := range r.Labels() {
		a.census[label]++
	}
}

// Skip records a workflow whose status could not be fetched. It contributes
// nothing to totals, census or snapshots.
func (a *Aggregator) Skip(index int, name string, reason error) {
	if reason == nil {
		reason = errors.New("status unavailable")
	}
	a.skipped = append(a.skipped, report.Skipped{
		Index:  index,
		Name:   name,
		Reason: reason.Error(),
		Err:    reason,
	})
}

// Merge folds other into a. Sums and census counts add; snapshots and
// skipped workflows are combined and ordered by index.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil {
		return
	}
	for _, f := range a.summed {
		a.sums[f] += other.sums[f]
	}
	for label, n := range other.census {
		a.census[label] += n
	}
	a.snapshots = append(a.snapshots, other.snapshots...)
	sort.SliceStable(a.snapshots, func(i, j int) bool {
		return a.snapshots[i].Index < a.snapshots[j].Index
	})
	a.skipped = append(a.skipped, other.skipped...)
	sort.SliceStable(a.skipped, func(i, j int) bool {
		return a.skipped[i].Index < a.skipped[j].Index
	})
}

// Queried returns the number of workflows folded with Add.
func (a *Aggregator) Queried() int {
	return len(a.snapshots)
}

// Summary derives the run summary. It does not modify the aggregator.
func (a *Aggregator) Summary() report.Summary {
	totals := make(report.Totals, 0, len(a.fields))
	for _, f := range a.fields {
		totals = append(totals, report.FieldTotal{Field: f, Value: a.sums[f]})
	}

	labels := make([]string, 0, len(a.census))
	for label := range a.census {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	census := make([]report.ProblemCount, 0, len(labels))
	for _, label := range labels {
		census = append(census, report.ProblemCount{Label: label, Workflows: a.census[label]})
	}

	rows := make([]report.WorkflowRow, 0, len(a.snapshots))
	for _, snap := range a.snapshots {
		rows = append(rows, report.WorkflowRow{
			Snapshot: snap,
			Rates:    report.RatesFor(snap.Jobs, snap.Succeeded, snap.Problems),
		})
	}

	var skipped []report.Skipped
	if len(a.skipped) > 0 {
		skipped = append([]report.Skipped{}, a.skipped...)
	}

	return report.Summary{
		Requested:    len(a.snapshots) + len(a.skipped),
		Queried:      len(a.snapshots),
		Totals:       totals,
		ProblemTypes: census,
		Overall:      report.RatesFor(a.sums[status.Jobs], a.sums[status.Succeeded], a.sums[status.Problems]),
		Workflows:    rows,
		Skipped:      skipped,
	}
}
