package discovery

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoWorkflows indicates that there is nothing to query.
var ErrNoWorkflows = errors.New("no workflows to query")

// Workflow is a workflow name together with its position in the sequence.
// Index is the numeric suffix for generated names and the 1-based list
// position for explicit names.
type Workflow struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// Names expands basename into basename_1 … basename_count. Suffixes start
// at 1.
func Names(basename string, count int) ([]Workflow, error) {
	basename = strings.TrimSpace(basename)
	if basename == "" {
		return nil, fmt.Errorf("workflow basename is empty")
	}
	if count <= 0 {
		return nil, ErrNoWorkflows
	}
	out := make([]Workflow, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, Workflow{Index: i, Name: fmt.Sprintf("%s_%d", basename, i)})
	}
	return out, nil
}

// Explicit returns the given names in order, dropping blanks and repeats.
func Explicit(names []string) ([]Workflow, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]Workflow, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Workflow{Index: len(out) + 1, Name: name})
	}
	if len(out) == 0 {
		return nil, ErrNoWorkflows
	}
	return out, nil
}
