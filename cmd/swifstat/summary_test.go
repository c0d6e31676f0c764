package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgignac/swifstat/internal/report"
	"github.com/mgignac/swifstat/internal/status"
)

func decodeSummary(t *testing.T, out string) report.Summary {
	t.Helper()
	var s report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s), out)
	return s
}

func skippedNames(s report.Summary) []string {
	names := make([]string, 0, len(s.Skipped))
	for _, sk := range s.Skipped {
		names = append(names, sk.Name)
	}
	return names
}

func TestSummaryFromDirJSON(t *testing.T) {
	chdir(t, projectRoot(t))

	out, _, err := execute(t, "summary", "hps", "4", "--from-dir", "testdata/status", "--format", "json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Equal(t, 4, s.Requested)
	assert.Equal(t, 2, s.Queried)
	assert.Equal(t, int64(1500), s.Totals.Get(status.Jobs))
	assert.Equal(t, int64(1450), s.Totals.Get(status.Succeeded))
	assert.Equal(t, int64(50), s.Totals.Get(status.Problems))
	assert.Equal(t, int64(16345), s.Totals.Get(status.InputMBProcessed))
	assert.Equal(t, int64(1560), s.Totals.Get(status.Attempts))
	assert.Len(t, s.Totals, len(status.TrackedFields()))

	assert.Equal(t, []report.ProblemCount{
		{Label: "AUGER-FAILED", Workflows: 1},
		{Label: "AUGER-TIMEOUT", Workflows: 1},
	}, s.ProblemTypes)

	require.NotNil(t, s.Overall)
	assert.InDelta(t, 100.0, s.Overall.Completion, 1e-9)
	assert.InDelta(t, 96.6667, s.Overall.Success, 1e-3)
	assert.InDelta(t, 3.3333, s.Overall.Failure, 1e-3)

	require.Len(t, s.Workflows, 2)
	assert.Equal(t, "hps_1", s.Workflows[0].Name)
	assert.Equal(t, "101", s.Workflows[0].ID)
	assert.Equal(t, "hps_3", s.Workflows[1].Name)
	require.NotNil(t, s.Workflows[1].Rates)
	assert.InDelta(t, 100.0, s.Workflows[1].Rates.Success, 1e-9)

	assert.Equal(t, []string{"hps_2", "hps_4"}, skippedNames(s))
	assert.Contains(t, s.Skipped[0].Reason, "unavailable")
	assert.Contains(t, s.Skipped[1].Reason, "empty")
}

func TestSummaryFromDirPretty(t *testing.T) {
	chdir(t, projectRoot(t))

	out, stderr, err := execute(t, "summary", "hps", "4", "--from-dir", "testdata/status")
	require.NoError(t, err)

	assert.Contains(t, out, "SUMMARY (2 of 4 workflows)")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "AUGER-TIMEOUT")
	assert.Contains(t, out, "Overall: completion 100.00%, success 96.67%, failure 3.33%")
	assert.Contains(t, out, "Skipped 2 workflows:")
	assert.NotContains(t, out, "querying workflows")
	assert.Contains(t, stderr, "could not get workflow status")
}

func TestSummaryVerboseDumpsRawReports(t *testing.T) {
	chdir(t, projectRoot(t))

	out, stderr, err := execute(t, "summary", "hps", "1", "--from-dir", "testdata/status", "--format", "json", "-v")
	require.NoError(t, err)

	assert.Contains(t, stderr, "=== hps_1 ===")
	assert.Contains(t, stderr, "problem_types = AUGER-TIMEOUT")
	assert.Contains(t, stderr, "folded workflow status")
	// stdout stays machine readable
	assert.Equal(t, 1, decodeSummary(t, out).Queried)
}

func TestSummaryZeroWorkflows(t *testing.T) {
	chdir(t, projectRoot(t))

	out, _, err := execute(t, "summary", "hps", "0", "--format", "json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Zero(t, s.Requested)
	assert.Zero(t, s.Queried)
	assert.Nil(t, s.Overall)
	assert.Empty(t, s.Workflows)
	for _, ft := range s.Totals {
		assert.Zero(t, ft.Value, ft.Field)
	}
}

func TestSummaryPrometheus(t *testing.T) {
	chdir(t, projectRoot(t))

	out, _, err := execute(t, "summary", "hps", "4", "--from-dir", "testdata/status", "--format", "prom")
	require.NoError(t, err)

	assert.Contains(t, out, `swif_field_total{field="jobs"} 1500`)
	assert.Contains(t, out, "swif_workflows_requested 4")
	assert.Contains(t, out, "swif_workflows_queried 2")
}

func TestSummaryRunsSwifBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake swif2 is a shell script")
	}
	chdir(t, projectRoot(t))

	bin := filepath.Join(t.TempDir(), "swif2")
	script := `#!/bin/sh
[ "$1" = status ] || exit 2
case "$2" in
  run_1) printf 'jobs = 10\nsucceeded = 9\nproblems = 1\nproblem_types = timeout\n' ;;
  *) echo "workflow $2 not found" >&2; exit 1 ;;
esac
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	out, _, err := execute(t, "summary", "run", "2", "--swif-bin", bin, "--parallel", "2", "--format", "json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Equal(t, 2, s.Requested)
	assert.Equal(t, 1, s.Queried)
	assert.Equal(t, int64(10), s.Totals.Get(status.Jobs))
	assert.Equal(t, []string{"run_2"}, skippedNames(s))
	assert.Contains(t, s.Skipped[0].Reason, "workflow run_2 not found")
}

func TestSummaryHungQueryDoesNotSkipOthers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake swif2 is a shell script")
	}
	chdir(t, projectRoot(t))

	// run_1 leaves a grandchild holding stdout, so its fetch overruns the
	// per-query timeout by the wait delay.
	bin := filepath.Join(t.TempDir(), "swif2")
	script := `#!/bin/sh
case "$2" in
  run_1) sleep 5 ;;
  *) printf 'jobs = 4\nsucceeded = 4\nproblems = 0\n' ;;
esac
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	out, _, err := execute(t, "summary", "run", "3", "--swif-bin", bin, "--timeout", "200ms", "--format", "json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Equal(t, 3, s.Requested)
	assert.Equal(t, 2, s.Queried)
	assert.Equal(t, int64(8), s.Totals.Get(status.Jobs))
	assert.Equal(t, []string{"run_1"}, skippedNames(s))
	assert.Contains(t, s.Skipped[0].Reason, "timed out")
}

func TestSummaryMissingSwifBinary(t *testing.T) {
	chdir(t, projectRoot(t))

	out, stderr, err := execute(t, "summary", "run", "1", "--swif-bin", filepath.Join(t.TempDir(), "nope"), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "swif2 is not installed")

	s := decodeSummary(t, out)
	assert.Zero(t, s.Queried)
	require.Len(t, s.Skipped, 1)
	assert.Contains(t, s.Skipped[0].Reason, "executable not found")
}

func TestSummaryConfigFile(t *testing.T) {
	root := projectRoot(t)
	tmp := t.TempDir()
	copyDir(t, filepath.Join(root, "testdata", "status"), filepath.Join(tmp, "captures"))

	configYAML := []byte(`basename: hps
count: 3
from_dir: captures
format: json
exclude:
  - hps_2
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".swifstat.yml"), configYAML, 0o644))
	chdir(t, tmp)

	out, _, err := execute(t, "summary")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Equal(t, 2, s.Requested)
	assert.Equal(t, 2, s.Queried)
	assert.Empty(t, s.Skipped)
}

func TestSummaryFieldSelection(t *testing.T) {
	chdir(t, projectRoot(t))

	out, _, err := execute(t, "summary", "hps", "3", "--from-dir", "testdata/status",
		"--field", "attempts", "--field", "input_mb_processed", "--format", "json")
	require.NoError(t, err)

	s := decodeSummary(t, out)
	assert.Equal(t, report.Totals{
		{Field: status.Attempts, Value: 1560},
		{Field: status.InputMBProcessed, Value: 16345},
	}, s.Totals)
	require.NotNil(t, s.Overall)
	assert.InDelta(t, 96.6667, s.Overall.Success, 1e-3)

	_, _, err = execute(t, "summary", "hps", "3", "--field", "workflow_user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status field")
}

func TestSummaryRejectsBadConfig(t *testing.T) {
	chdir(t, projectRoot(t))

	_, _, err := execute(t, "summary", "hps", "1", "--format", "xml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid configuration"), err.Error())

	_, _, err = execute(t, "summary", "hps", "1", "--parallel", "0")
	require.Error(t, err)
}
