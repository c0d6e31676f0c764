package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/report"
)

// YAMLRenderer emits the same document as JSONRenderer in YAML.
type YAMLRenderer struct {
	out io.Writer
}

// NewYAML creates a YAML renderer writing to out.
func NewYAML(out io.Writer) *YAMLRenderer {
	return &YAMLRenderer{out: out}
}

// RenderSummary encodes the summary as YAML.
func (y *YAMLRenderer) RenderSummary(summary report.Summary) error {
	return y.encode(summary)
}

// RenderList encodes the workflow list as YAML.
func (y *YAMLRenderer) RenderList(workflows []discovery.Workflow) error {
	if workflows == nil {
		workflows = []discovery.Workflow{}
	}
	return y.encode(ListDocument{Workflows: workflows})
}

func (y *YAMLRenderer) encode(v any) error {
	enc := yaml.NewEncoder(y.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
