package report

import "github.com/mgignac/swifstat/internal/status"

// FieldTotal is the sum of one tracked field across all queried workflows.
type FieldTotal struct {
	Field status.Field `json:"field" yaml:"field"`
	Value int64        `json:"value" yaml:"value"`
}

// Totals holds one FieldTotal per tracked field, in display order.
type Totals []FieldTotal

// Get returns the total for f, or zero when f is not tracked.
func (t Totals) Get(f status.Field) int64 {
	for _, ft := range t {
		if ft.Field == f {
			return ft.Value
		}
	}
	return 0
}

// ProblemCount is the number of workflows that reported a problem type.
type ProblemCount struct {
	Label     string `json:"label" yaml:"label"`
	Workflows int    `json:"workflows" yaml:"workflows"`
}

// Snapshot is the reduced view of one workflow's status report.
type Snapshot struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	ID        string `json:"workflow_id,omitempty" yaml:"workflow_id,omitempty"`
	User      string `json:"workflow_user,omitempty" yaml:"workflow_user,omitempty"`
	Jobs      int64  `json:"jobs" yaml:"jobs"`
	Succeeded int64  `json:"succeeded" yaml:"succeeded"`
	Problems  int64  `json:"problems" yaml:"problems"`
}

// WorkflowRow pairs a snapshot with its rates. Rates is nil when the
// workflow reported no jobs.
type WorkflowRow struct {
	Snapshot `yaml:",inline"`
	Rates    *Rates `json:"rates" yaml:"rates"`
}

// Skipped records a workflow whose status could not be fetched.
type Skipped struct {
	Index  int    `json:"index" yaml:"index"`
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

// Summary aggregates the status of a sequence of workflows.
type Summary struct {
	Requested    int            `json:"requested" yaml:"requested"`
	Queried      int            `json:"queried" yaml:"queried"`
	Totals       Totals         `json:"totals" yaml:"totals"`
	ProblemTypes []ProblemCount `json:"problem_types" yaml:"problem_types"`
	Overall      *Rates         `json:"overall" yaml:"overall"`
	Workflows    []WorkflowRow  `json:"workflows" yaml:"workflows"`
	Skipped      []Skipped      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}
