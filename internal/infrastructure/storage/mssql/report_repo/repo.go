// Package report_repo provides SQL Server implementations for report repositories.
package report_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/storage/mssql"
	"erpreports/internal/infrastructure/storage/mssql/query"
)

// Target views and tables.
const (
	viewSales            = "dbo.v_fact_ventas"
	viewRemisiones       = "dbo.v_remisiones_ventas"
	viewInventory        = "dbo.v_inventario_actual"
	viewPurchases        = "dbo.v_fact_compras"
	viewSupplierPayments = "dbo.v_pagos_proveedor"
	viewGoals            = "dbo.v_metas_clientes"
	tableDocuments       = "dbo.admDocumentos"
	tableClients         = "dbo.admClientes"
)

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	runner *mssql.Runner

	// historyStart bounds purchases and supplier payments from below.
	historyStart time.Time
}

// NewReportRepo creates a new report repository.
func NewReportRepo(runner *mssql.Runner, historyStart time.Time) *ReportRepo {
	return &ReportRepo{
		runner:       runner,
		historyStart: historyStart,
	}
}

// selectRows builds b and returns its rows.
func (r *ReportRepo) selectRows(ctx context.Context, name string, b squirrel.Sqlizer) ([]reports.Row, error) {
	stmt, err := query.Build(b)
	if err != nil {
		return nil, err
	}
	return r.runner.SelectRows(ctx, name, stmt)
}
