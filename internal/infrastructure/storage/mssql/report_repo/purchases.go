package report_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"erpreports/internal/domain/filter"
	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/storage/mssql/query"
)

// Purchases returns purchase lines from v_fact_compras in the requested shape.
func (r *ReportRepo) Purchases(ctx context.Context, f reports.PurchasesFilter) ([]reports.Row, error) {
	var p query.Predicates
	p.Since("CFECHA", r.historyStart).
		DateRange("CFECHA", f.Dates).
		EqID("CIDCLIENTEPROVEEDOR", f.SupplierID).
		EqID("CIDPRODUCTO", f.ProductID).
		EqString("tipo_concepto", f.ConceptType)

	var (
		b   squirrel.SelectBuilder
		err error
	)
	switch f.Shape {
	case filter.PurchasesByPeriod:
		b = purchasesByPeriod(f.Period)
	case filter.PurchasesTopSuppliers:
		b, err = topSuppliers(&p, f.Limit)
		if err != nil {
			return nil, err
		}
	case filter.PurchasesTopProducts:
		b = query.Builder.
			Select(
				"CIDPRODUCTO",
				"CCODIGOPRODUCTO",
				"CNOMBREPRODUCTO",
				"SUM(cantidad) AS cantidad_total",
				"SUM(total) AS total_compras",
				"COUNT(DISTINCT CIDDOCUMENTO) AS documentos",
			).
			Options(query.Top(f.Limit)).
			From(viewPurchases).
			GroupBy("CIDPRODUCTO", "CCODIGOPRODUCTO", "CNOMBREPRODUCTO").
			OrderBy("total_compras DESC")
	default:
		b = query.Builder.Select("*").
			Options(query.Top(f.Limit)).
			From(viewPurchases).
			OrderBy("CFECHA DESC", "CIDMOVIMIENTO DESC")
	}

	return r.selectRows(ctx, "purchases "+string(f.Shape), p.Apply(b))
}

func purchasesByPeriod(period filter.Period) squirrel.SelectBuilder {
	label := query.PeriodLabel("CFECHA", period)
	return query.Builder.
		Select(
			label+" AS periodo",
			"SUM(total) AS total_compras",
			"SUM(subtotal) AS subtotal",
			"SUM(iva) AS iva",
			"COUNT(DISTINCT CIDDOCUMENTO) AS documentos",
			"COUNT(*) AS lineas",
		).
		From(viewPurchases).
		GroupBy(label).
		OrderBy("periodo")
}

// topSuppliers ranks suppliers by total with their share of the filtered total.
// The share sub-select repeats the outer filters, so their arguments bind twice.
func topSuppliers(p *query.Predicates, limit int) (squirrel.SelectBuilder, error) {
	subSQL, subArgs, err := query.Subquery(p.Apply(query.Builder.Select("SUM(total)").From(viewPurchases)))
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}

	return query.Builder.
		Select(
			"CIDCLIENTEPROVEEDOR",
			"proveedor",
			"SUM(total) AS total_compras",
			"COUNT(DISTINCT CIDDOCUMENTO) AS documentos",
		).
		Column("ROUND(SUM(total) * 100.0 / NULLIF(("+subSQL+"), 0), 2) AS porcentaje", subArgs...).
		Options(query.Top(limit)).
		From(viewPurchases).
		GroupBy("CIDCLIENTEPROVEEDOR", "proveedor").
		OrderBy("total_compras DESC"), nil
}

// SupplierPayments returns payments made to suppliers in the requested shape.
// Credit notes are excluded unless a payment type is requested explicitly.
func (r *ReportRepo) SupplierPayments(ctx context.Context, f reports.SupplierPaymentsFilter) ([]reports.Row, error) {
	var p query.Predicates
	p.Since("CFECHA", r.historyStart).
		DateRange("CFECHA", f.Dates).
		EqID("CIDCLIENTEPROVEEDOR", f.SupplierID)
	if f.PaymentType != "" {
		p.Eq("tipo_pago", f.PaymentType)
	} else {
		p.Const("tipo_pago <> 'NOTA_CREDITO'")
	}

	var b squirrel.SelectBuilder
	switch f.Shape {
	case filter.PaymentsByPeriod:
		label := query.PeriodLabel("CFECHA", f.Period)
		b = query.Builder.
			Select(
				label+" AS periodo",
				"SUM(CTOTAL) AS total_pagos",
				"COUNT(*) AS cantidad_pagos",
				"COUNT(DISTINCT CIDCLIENTEPROVEEDOR) AS proveedores_pagados",
			).
			From(viewSupplierPayments).
			GroupBy(label).
			OrderBy("periodo")
	case filter.PaymentsBySupplier:
		b = query.Builder.
			Select(
				"CIDCLIENTEPROVEEDOR",
				"proveedor",
				"SUM(CTOTAL) AS total_pagos",
				"COUNT(*) AS cantidad_pagos",
			).
			From(viewSupplierPayments).
			GroupBy("CIDCLIENTEPROVEEDOR", "proveedor").
			OrderBy("total_pagos DESC")
	default:
		b = query.Builder.Select("*").
			Options(query.Top(f.Limit)).
			From(viewSupplierPayments).
			OrderBy("CFECHA DESC", "CIDDOCUMENTO DESC")
	}

	return r.selectRows(ctx, "supplier payments "+string(f.Shape), p.Apply(b))
}
