package status

import (
	"fmt"
	"strings"
)

// Field names a value reported by `swif2 status`.
type Field string

// Summable fields, in display order.
const (
	Jobs                Field = "jobs"
	Undispatched        Field = "undispatched"
	Dispatched          Field = "dispatched"
	DispatchedPreparing Field = "dispatched_preparing"
	DispatchedRunning   Field = "dispatched_running"
	DispatchedPending   Field = "dispatched_pending"
	DispatchedOther     Field = "dispatched_other"
	DispatchedReaping   Field = "dispatched_reaping"
	Succeeded           Field = "succeeded"
	Abandoned           Field = "abandoned"
	Problems            Field = "problems"
	Attempts            Field = "attempts"
	MaxConcurrent       Field = "max_concurrent"
	InputMBProcessed    Field = "input_mb_processed"
	OutputMBGenerated   Field = "output_mb_generated"
)

// ProblemTypes holds the comma separated failure labels of a workflow.
const ProblemTypes Field = "problem_types"

// Identity fields describe a single workflow and are never summed.
const (
	WorkflowID   Field = "workflow_id"
	WorkflowName Field = "workflow_name"
	WorkflowUser Field = "workflow_user"
	WorkflowSite Field = "workflow_site"
	CreateTS     Field = "create_ts"
	UpdateTS     Field = "update_ts"
	SummaryTS    Field = "summary_ts"
)

var trackedFields = [...]Field{
	Jobs,
	Undispatched,
	Dispatched,
	DispatchedPreparing,
	DispatchedRunning,
	DispatchedPending,
	DispatchedOther,
	DispatchedReaping,
	Succeeded,
	Abandoned,
	Problems,
	Attempts,
	MaxConcurrent,
	InputMBProcessed,
	OutputMBGenerated,
}

// TrackedFields returns the summable fields in display order. The returned
// slice is a copy and may be modified by the caller.
func TrackedFields() []Field {
	out := make([]Field, len(trackedFields))
	copy(out, trackedFields[:])
	return out
}

// IsTracked reports whether f is one of the summable fields.
func IsTracked(f Field) bool {
	for _, tracked := range trackedFields {
		if tracked == f {
			return true
		}
	}
	return false
}

// IsIdentity reports whether f identifies a workflow rather than measuring it.
func IsIdentity(f Field) bool {
	switch f {
	case WorkflowID, WorkflowName, WorkflowUser, WorkflowSite, CreateTS, UpdateTS, SummaryTS:
		return true
	}
	return false
}

// ParseFields converts field names to tracked fields, keeping order and
// dropping repeats.
func ParseFields(names []string) ([]Field, error) {
	var fields []Field
	seen := make(map[Field]struct{}, len(names))
	for _, name := range names {
		f := Field(strings.ToLower(strings.TrimSpace(name)))
		if !IsTracked(f) {
			return nil, fmt.Errorf("unknown status field %q", name)
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}
	return fields, nil
}

func (f Field) String() string {
	return string(f)
}
