package report_repo

import (
	"context"

	"erpreports/internal/domain/filter"
	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/storage/mssql/query"
)

const goalAttainment = "ROUND(SUM(venta_real) * 100.0 / NULLIF(SUM(meta), 0), 2) AS cumplimiento"

// Goals returns sales targets against actual sales per client and month.
func (r *ReportRepo) Goals(ctx context.Context, f reports.GoalsFilter) ([]reports.Row, error) {
	var p query.Predicates
	if f.Year > 0 {
		p.Eq("anio", f.Year)
	}
	if f.Month > 0 {
		p.Eq("mes", f.Month)
	}
	p.EqID("id_cliente", f.ClientID)

	b := query.Builder.Select().From(viewGoals)
	switch f.Shape {
	case filter.GoalsByClient:
		b = b.Columns(
			"id_cliente",
			"cliente_name",
			"SUM(meta) AS meta",
			"SUM(venta_real) AS venta_real",
			goalAttainment,
		).
			GroupBy("id_cliente", "cliente_name").
			OrderBy("meta DESC")
	case filter.GoalsByMonth:
		b = b.Columns(
			"anio",
			"mes",
			"SUM(meta) AS meta",
			"SUM(venta_real) AS venta_real",
			goalAttainment,
		).
			GroupBy("anio", "mes").
			OrderBy("anio", "mes")
	default:
		b = b.Columns("*").OrderBy("anio", "mes", "cliente_name")
	}

	return r.selectRows(ctx, "goals", p.Apply(b))
}
