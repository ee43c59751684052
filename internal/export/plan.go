package export

import (
	"io"
	"time"

	"github.com/ramonehamilton/cr-tools/internal/planner"
)

// PlanDocument is the JSON form of a plan.
type PlanDocument struct {
	Arena       string          `json:"arena"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     planner.Summary `json:"summary"`
	Cards       []planner.Row   `json:"cards"`
}

// NewPlanDocument flattens plan for export.
func NewPlanDocument(plan *planner.Plan) PlanDocument {
	return PlanDocument{
		Arena:       plan.Arena.String(),
		GeneratedAt: plan.GeneratedAt,
		Summary:     plan.Summary(),
		Cards:       plan.Rows(),
	}
}

// planData picks what gets written: rows for CSV, the full document for JSON.
func (e *Exporter) planData(plan *planner.Plan) any {
	if e.opts.Format == FormatCSV {
		return plan.Rows()
	}
	return NewPlanDocument(plan)
}

// ExportPlan writes plan to the configured file.
func (e *Exporter) ExportPlan(plan *planner.Plan) error {
	return e.Export(e.planData(plan))
}

// ExportPlanTo writes plan to w.
func (e *Exporter) ExportPlanTo(w io.Writer, plan *planner.Plan) error {
	return e.ExportTo(w, e.planData(plan))
}
