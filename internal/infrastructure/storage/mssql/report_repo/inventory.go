package report_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/storage/mssql/query"
)

var inventoryColumns = []string{
	"id_existencia",
	"id_producto",
	"codigo_producto",
	"nombre_producto",
	"status_producto",
	"id_almacen",
	"codigo_almacen",
	"almacen",
	"existencia",
	"fecha_extraccion",
}

// Inventory returns current stock per product and warehouse.
func (r *ReportRepo) Inventory(ctx context.Context, f reports.InventoryFilter) ([]reports.Row, error) {
	var p query.Predicates
	p.EqID("id_almacen", f.WarehouseID).
		Contains(f.Product, "codigo_producto", "nombre_producto")

	if f.Status != nil {
		p.Eq("status_producto", *f.Status)
	} else {
		p.Const("status_producto = 1")
	}
	if f.MinStock != nil {
		p.Raw(squirrel.Gt{"existencia": *f.MinStock})
	}
	if f.MaxStock != nil {
		p.Raw(squirrel.LtOrEq{"existencia": *f.MaxStock})
	}

	b := p.Apply(query.Builder.Select(inventoryColumns...).From(viewInventory)).
		OrderBy("almacen", "nombre_producto")

	return r.selectRows(ctx, "inventory", b)
}
