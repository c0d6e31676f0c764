package output

import (
	"errors"

	"github.com/mgignac/swifstat/internal/aggregate"
	"github.com/mgignac/swifstat/internal/report"
	"github.com/mgignac/swifstat/internal/status"
)

func scenarioSummary() report.Summary {
	agg := aggregate.New(nil)
	agg.Add(1, "run_1", status.Parse("jobs=50\nsucceeded=45\nproblems=5\nproblem_types=disk_full\ninput_mb_processed=12,345"))
	agg.Skip(2, "run_2", errors.New("query run_2: empty status output"))
	agg.Add(3, "run_3", status.Parse("jobs=20\nsucceeded=20\nproblems=0"))
	agg.Add(4, "run_4", status.Parse("workflow_user=hps"))
	return agg.Summary()
}
