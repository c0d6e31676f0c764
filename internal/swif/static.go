package swif

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Static serves status text from memory. Workflows missing from the map, or
// mapped to blank text, are unavailable.
type Static map[string]string

// Fetch implements Fetcher.
func (s Static) Fetch(ctx context.Context, workflow string) Result {
	res := Result{Workflow: workflow}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("query %s: %w", workflow, err)
		return res
	}
	text, ok := s[workflow]
	if !ok {
		res.Err = fmt.Errorf("query %s: %w", workflow, ErrUnavailable)
		return res
	}
	if strings.TrimSpace(text) == "" {
		res.Err = fmt.Errorf("query %s: %w", workflow, ErrEmptyOutput)
		return res
	}
	res.Text = text
	return res
}

// Dir serves status text captured earlier with `swif2 status <name> >
// <dir>/<name>.txt`.
type Dir struct {
	Root string
}

// Fetch implements Fetcher.
func (d Dir) Fetch(ctx context.Context, workflow string) Result {
	res := Result{Workflow: workflow}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("query %s: %w", workflow, err)
		return res
	}
	if strings.ContainsAny(workflow, `/\`) {
		res.Err = fmt.Errorf("query %s: invalid workflow name", workflow)
		return res
	}
	path := filepath.Join(d.Root, workflow+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Err = fmt.Errorf("query %s: %w", workflow, ErrUnavailable)
			return res
		}
		res.Err = fmt.Errorf("read %q: %w", path, err)
		return res
	}
	if strings.TrimSpace(string(data)) == "" {
		res.Err = fmt.Errorf("query %s: %w", workflow, ErrEmptyOutput)
		return res
	}
	res.Text = string(data)
	return res
}
