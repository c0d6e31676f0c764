package output

import (
	"encoding/json"
	"io"

	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/report"
)

// JSONRenderer emits structured summary data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// ListDocument is the JSON and YAML schema of the list command.
type ListDocument struct {
	Workflows []discovery.Workflow `json:"workflows" yaml:"workflows"`
}

// RenderSummary encodes the summary as indented JSON.
func (j *JSONRenderer) RenderSummary(summary report.Summary) error {
	return j.encode(summary)
}

// RenderList encodes the workflow list as indented JSON.
func (j *JSONRenderer) RenderList(workflows []discovery.Workflow) error {
	if workflows == nil {
		workflows = []discovery.Workflow{}
	}
	return j.encode(ListDocument{Workflows: workflows})
}

func (j *JSONRenderer) encode(v any) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
