package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	prettytext "github.com/jedib0t/go-pretty/v6/text"

	"github.com/mgignac/swifstat/internal/discovery"
	"github.com/mgignac/swifstat/internal/report"
)

// PrettyRenderer renders summaries as human readable tables.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

func (p *PrettyRenderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderList prints the workflows that would be queried, one per line.
func (p *PrettyRenderer) RenderList(workflows []discovery.Workflow) error {
	for _, wf := range workflows {
		if _, err := fmt.Fprintf(p.out, "%s\n", wf.Name); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints totals, the problem-type census, overall rates and
// the per-workflow rate table.
func (p *PrettyRenderer) RenderSummary(s report.Summary) error {
	rule := strings.Repeat("=", 50)
	if _, err := fmt.Fprintf(p.out, "%s\nSUMMARY (%d of %d workflows)\n%s\n", rule, s.Queried, s.Requested, rule); err != nil {
		return err
	}

	totals := p.newTable()
	totals.AppendHeader(table.Row{"Field", "Total"})
	for _, ft := range s.Totals {
		totals.AppendRow(table.Row{ft.Field.String(), Count(ft.Value)})
	}
	totals.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: prettytext.AlignRight}})
	totals.Render()

	if len(s.ProblemTypes) == 0 {
		fmt.Fprintln(p.out, "Problem types: none")
	} else {
		census := p.newTable()
		census.AppendHeader(table.Row{"Problem type", "Workflows"})
		for _, pc := range s.ProblemTypes {
			census.AppendRow(table.Row{pc.Label, Count(int64(pc.Workflows))})
		}
		census.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: prettytext.AlignRight}})
		census.Render()
	}

	if s.Overall == nil {
		fmt.Fprintf(p.out, "Overall: %s (no jobs)\n", NoData)
	} else {
		cells := RateCells(s.Overall)
		fmt.Fprintf(p.out, "Overall: completion %s, success %s, failure %s\n", cells[0], cells[1], cells[2])
	}

	if len(s.Workflows) > 0 {
		rows := p.newTable()
		rows.AppendHeader(table.Row{"Workflow", "Jobs", "Succeeded", "Problems", "Completion", "Success", "Failure"})
		for _, row := range s.Workflows {
			cells := RateCells(row.Rates)
			rows.AppendRow(table.Row{
				row.Name,
				Count(row.Jobs),
				Count(row.Succeeded),
				Count(row.Problems),
				cells[0], cells[1], cells[2],
			})
		}
		configs := make([]table.ColumnConfig, 0, 6)
		for col := 2; col <= 7; col++ {
			configs = append(configs, table.ColumnConfig{Number: col, Align: prettytext.AlignRight})
		}
		rows.SetColumnConfigs(configs)
		rows.Render()
	}

	if len(s.Skipped) > 0 {
		fmt.Fprintf(p.out, "Skipped %d workflows:\n", len(s.Skipped))
		for _, sk := range s.Skipped {
			fmt.Fprintf(p.out, "  %s: %s\n", sk.Name, sk.Reason)
		}
	}
	return nil
}
