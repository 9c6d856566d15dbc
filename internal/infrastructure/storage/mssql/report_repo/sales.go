package report_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/storage/mssql/query"
)

// Sales returns invoice rows from v_fact_ventas.
func (r *ReportRepo) Sales(ctx context.Context, f reports.SalesFilter) ([]reports.Row, error) {
	return r.selectRows(ctx, "sales", salesQuery(viewSales, f))
}

// Remisiones returns delivery-note rows with the same filters as Sales.
func (r *ReportRepo) Remisiones(ctx context.Context, f reports.SalesFilter) ([]reports.Row, error) {
	return r.selectRows(ctx, "sales remisiones", salesQuery(viewRemisiones, f))
}

// salesQuery selects raw sales rows. TOP applies only to unbounded requests.
func salesQuery(view string, f reports.SalesFilter) squirrel.SelectBuilder {
	b := query.Builder.Select("*").From(view)
	if f.Dates == nil {
		b = b.Options(query.Top(f.Limit))
	}

	var p query.Predicates
	p.DateRange("fecha", f.Dates).
		EqID("id_cliente", f.ClientID).
		Contains(f.Search, "cliente_name")

	return p.Apply(b).OrderBy("fecha DESC", "id_movimiento DESC")
}

// Receivables returns one row per document with an outstanding balance.
// saldo_pendiente repeats on every line of a document, hence MAX.
func (r *ReportRepo) Receivables(ctx context.Context, f reports.ReceivablesFilter) ([]reports.Row, error) {
	var p query.Predicates
	p.Const("saldo_pendiente > 0").
		DateRange("fecha", f.Dates).
		EqID("id_cliente", f.ClientID).
		Contains(f.Search, "cliente_name")

	b := p.Apply(query.Builder.
		Select(
			"id_documento",
			"MIN(fecha) AS fecha",
			"MIN(fecha_vencimiento) AS fecha_vencimiento",
			"cliente_name",
			"MAX(saldo_pendiente) AS saldo_pendiente",
		).
		From(viewSales)).
		GroupBy("id_documento", "cliente_name").
		Having("MAX(saldo_pendiente) > 0").
		OrderBy("MIN(fecha_vencimiento) ASC", "MAX(saldo_pendiente) DESC")

	return r.selectRows(ctx, "receivables", b)
}

// Clients returns customers from the client catalog.
func (r *ReportRepo) Clients(ctx context.Context, f reports.ClientsFilter) ([]reports.Row, error) {
	var p query.Predicates
	p.Const("CTIPOCLIENTE IN (1, 2)")
	if f.Status != nil {
		p.Eq("CESTATUS", *f.Status)
	} else {
		p.Const("CESTATUS = 1")
	}
	p.Contains(f.Search, "CCODIGOCLIENTE", "CRAZONSOCIAL")

	b := p.Apply(query.Builder.
		Select(
			"CIDCLIENTEPROVEEDOR",
			"CCODIGOCLIENTE",
			"CRAZONSOCIAL",
			"CRFC",
			"CESTATUS",
		).
		Options(query.Top(f.Limit)).
		From(tableClients)).
		OrderBy("CRAZONSOCIAL")

	return r.selectRows(ctx, "clients", b)
}
