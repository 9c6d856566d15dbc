package report_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"erpreports/internal/domain/payables"
	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/storage/mssql/query"
)

// PayableDocuments returns open supplier documents for the aging engine.
func (r *ReportRepo) PayableDocuments(ctx context.Context, q reports.PayableDocumentsQuery) ([]payables.Document, error) {
	var p query.Predicates
	p.Const("d.CUSAPROVEEDOR = 1").
		Const("d.CAFECTADO = 1").
		Const("d.CCANCELADO = 0").
		Const("d.CPENDIENTE > 0.01").
		EqID("d.CIDCLIENTEPROVEEDOR", q.SupplierID)

	if q.Window != nil {
		window := query.DateRange("d.CFECHA", *q.Window)
		if q.DebtsOnlyWindow {
			// credits stay in regardless of date so the net balance is true
			p.Raw(squirrel.Or{
				squirrel.And{squirrel.Expr("d.CNATURALEZA >= 1"), window},
				squirrel.Expr("d.CNATURALEZA = 0"),
			})
		} else {
			p.Raw(window)
		}
	}

	b := p.Apply(query.Builder.
		Select(
			"d.CIDDOCUMENTO",
			"d.CFECHA",
			"d.CFOLIO",
			"d.CSERIEDOCUMENTO",
			"d.CIDCLIENTEPROVEEDOR",
			"c.CRAZONSOCIAL AS proveedor",
			"cpto.CNOMBRECONCEPTO AS concepto",
			"d.CNATURALEZA",
			"d.CPENDIENTE",
			"d.CFECHAVENCIMIENTO",
		).
		From(tableDocuments + " d").
		LeftJoin(tableClients + " c ON c.CIDCLIENTEPROVEEDOR = d.CIDCLIENTEPROVEEDOR").
		LeftJoin("dbo.admConceptos cpto ON cpto.CIDCONCEPTODOCUMENTO = d.CIDCONCEPTODOCUMENTO"))

	stmt, err := query.Build(b)
	if err != nil {
		return nil, err
	}

	var docs []payables.Document
	if err := r.runner.Select(ctx, "payable documents", &docs, stmt); err != nil {
		return nil, err
	}
	return docs, nil
}
