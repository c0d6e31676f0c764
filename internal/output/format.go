package output

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mgignac/swifstat/internal/config"
	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/report"
)

// Renderer writes summaries and workflow lists in one output format.
type Renderer interface {
	RenderSummary(summary report.Summary) error
	RenderList(workflows []discovery.Workflow) error
}

// New returns the renderer for format writing to out.
func New(format string, out io.Writer) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case config.FormatPretty, "":
		return NewPretty(out), nil
	case config.FormatJSON:
		return NewJSON(out), nil
	case config.FormatYAML:
		return NewYAML(out), nil
	case config.FormatProm:
		return NewProm(out), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// NoData is printed in place of a rate that has no jobs to divide by.
const NoData = "n/a"

var numbers = message.NewPrinter(language.English)

// Count formats n with thousands separators, e.g. 12,345.
func Count(n int64) string {
	return numbers.Sprintf("%d", n)
}

// Percent formats a rate as 92.86%.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// RateCells returns completion, success and failure cells for rates, or
// NoData placeholders when rates is nil.
func RateCells(rates *report.Rates) [3]string {
	if rates == nil {
		return [3]string{NoData, NoData, NoData}
	}
	return [3]string{Percent(rates.Completion), Percent(rates.Success), Percent(rates.Failure)}
}
