// Package swif queries the swif2 workflow manager for workflow status.
package swif

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single `swif2 status` invocation.
const DefaultTimeout = 60 * time.Second

// DefaultBinary is the swif2 executable looked up on PATH.
const DefaultBinary = "swif2"

var (
	// ErrTimeout reports that the status query exceeded its timeout.
	ErrTimeout = errors.New("status query timed out")
	// ErrNotInstalled reports that the swif2 executable could not be found.
	ErrNotInstalled = errors.New("swif2 executable not found")
	// ErrEmptyOutput reports that swif2 printed nothing for the workflow.
	ErrEmptyOutput = errors.New("empty status output")
	// ErrUnavailable reports that no status exists for the workflow.
	ErrUnavailable = errors.New("status unavailable")
)

// Result is the outcome of one status query. Err is non-nil exactly when
// the query failed; Text is only meaningful when it succeeded.
type Result struct {
	Workflow string
	Text     string
	Err      error
}

// OK reports whether the query produced a status report.
func (r Result) OK() bool {
	return r.Err == nil
}

// Fetcher returns the raw status text of a workflow.
type Fetcher interface {
	Fetch(ctx context.Context, workflow string) Result
}

// Options configure the swif2 client.
type Options struct {
	Binary    string
	Timeout   time.Duration
	Logger    *zap.Logger
	TailLines int
}

// Client runs `swif2 status <workflow>`.
type Client struct {
	opts Options
}

// NewClient creates a Client, filling unset options with defaults.
func NewClient(opts Options) *Client {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TailLines <= 0 {
		opts.TailLines = 5
	}
	return &Client{opts: opts}
}

// Fetch queries the status of workflow. It never panics or blocks past the
// configured timeout; every failure is returned in Result.Err.
func (c *Client) Fetch(ctx context.Context, workflow string) Result {
	res := Result{Workflow: workflow}

	parent := ctx
	ctx, cancel := context.WithTimeout(parent, c.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.opts.Binary, "status", workflow)
	cmd.Stdin = nil
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		if parentErr := parent.Err(); parentErr != nil {
			res.Err = fmt.Errorf("query %s: %w", workflow, parentErr)
			return res
		}
		c.opts.Logger.Warn("timeout getting workflow status",
			zap.String("workflow", workflow),
			zap.Duration("timeout", c.opts.Timeout))
		res.Err = fmt.Errorf("%s after %s: %w", workflow, c.opts.Timeout, ErrTimeout)
		return res
	}

	text := stdout.String()
	if err != nil {
		// A background child of swif2 may keep stdout open after a clean exit.
		if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil &&
			cmd.ProcessState.Success() && strings.TrimSpace(text) != "" {
			c.opts.Logger.Debug("swif2 exited but its output stayed open",
				zap.String("workflow", workflow),
				zap.Duration("wait_delay", cmd.WaitDelay))
		} else {
			res.Err = classify(workflow, err, tailLines(stderr.String(), c.opts.TailLines))
			return res
		}
	}

	if strings.TrimSpace(text) == "" {
		res.Err = fmt.Errorf("query %s: %w", workflow, ErrEmptyOutput)
		return res
	}
	res.Text = text
	return res
}

func classify(workflow string, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("query %s: %w", workflow, ErrNotInstalled)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && stderr != "" {
		return fmt.Errorf("query %s: %w: %s", workflow, exitErr, stderr)
	}
	return fmt.Errorf("query %s: %w", workflow, err)
}

// Missing reports whether err means the swif2 executable is not installed.
func Missing(err error) bool {
	return errors.Is(err, ErrNotInstalled) || errors.Is(err, exec.ErrNotFound)
}

func tailLines(input string, maxLines int) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	lines := strings.Split(input, "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "; ")
	}
	return strings.Join(lines[len(lines)-maxLines:], "; ")
}
