// Package reports provides the reporting use cases over the accounting database.
package reports

import (
	"github.com/shopspring/decimal"

	"erpreports/internal/domain/filter"
)

// Report names, used for routing, logging and error details.
const (
	ReportSales            = "ventas"
	ReportReceivables      = "cobranza"
	ReportInventory        = "inventario"
	ReportPurchases        = "compras"
	ReportPayables         = "cxp"
	ReportSupplierPayments = "pagos-proveedores"
	ReportClients          = "clientes"
	ReportGoals            = "metas"
)

// Row is one result row: column name to scalar value, passed through to JSON.
type Row = map[string]any

// --- Sales ---

// SalesFilter defines filter for the sales report (v_fact_ventas).
type SalesFilter struct {
	Dates    *filter.DateRange
	ClientID *int64
	Search   string

	// Limit caps rows only when no date window is given.
	Limit int

	// IncludeRemisiones appends delivery notes to invoice rows.
	IncludeRemisiones bool
}

// --- Receivables ---

// ReceivablesFilter defines filter for the collections report.
type ReceivablesFilter struct {
	Dates    *filter.DateRange
	ClientID *int64
	Search   string
}

// --- Inventory ---

// InventoryFilter defines filter for the current stock report.
type InventoryFilter struct {
	WarehouseID *int64

	// Product matches code or name.
	Product string

	// Status defaults to active products when nil.
	Status *int64

	// Stock range: MinStock exclusive, MaxStock inclusive.
	MinStock *decimal.Decimal
	MaxStock *decimal.Decimal
}

// --- Purchases ---

// PurchasesFilter defines filter for the purchases report.
type PurchasesFilter struct {
	Dates       *filter.DateRange
	SupplierID  *int64
	ProductID   *int64
	ConceptType string

	Shape  filter.PurchasesShape
	Period filter.Period
	Limit  int
}

// --- Accounts payable ---

// PayablesFilter defines filter for the accounts payable views.
type PayablesFilter struct {
	SupplierID *int64

	// Dates restricts debts only; credits always count.
	Dates *filter.DateRange

	View filter.PayablesView

	// Year of the monthly view; zero means the current year.
	Year int
}

// PayableDocumentsQuery selects open payable documents.
type PayableDocumentsQuery struct {
	SupplierID *int64
	Window     *filter.DateRange

	// DebtsOnlyWindow applies Window to debts and keeps every open credit.
	DebtsOnlyWindow bool
}

// --- Supplier payments ---

// SupplierPaymentsFilter defines filter for payments made to suppliers.
type SupplierPaymentsFilter struct {
	Dates       *filter.DateRange
	SupplierID  *int64
	PaymentType string

	Shape  filter.PaymentsShape
	Period filter.Period
	Limit  int
}

// --- Clients ---

// ClientsFilter defines filter for the client catalog.
type ClientsFilter struct {
	Search string

	// Status defaults to active clients when nil.
	Status *int64
	Limit  int
}

// --- Sales goals ---

// GoalsFilter defines filter for sales goals per client.
type GoalsFilter struct {
	Year     int
	Month    int
	ClientID *int64
	Shape    filter.GoalsShape
}
