package reports

import (
	"context"

	"erpreports/internal/domain/payables"
)

// Repository defines report data access interface.
type Repository interface {
	// Sales
	Sales(ctx context.Context, filter SalesFilter) ([]Row, error)
	Remisiones(ctx context.Context, filter SalesFilter) ([]Row, error)
	Receivables(ctx context.Context, filter ReceivablesFilter) ([]Row, error)
	Clients(ctx context.Context, filter ClientsFilter) ([]Row, error)
	Goals(ctx context.Context, filter GoalsFilter) ([]Row, error)

	// Stock
	Inventory(ctx context.Context, filter InventoryFilter) ([]Row, error)

	// Purchasing
	Purchases(ctx context.Context, filter PurchasesFilter) ([]Row, error)
	SupplierPayments(ctx context.Context, filter SupplierPaymentsFilter) ([]Row, error)
	PayableDocuments(ctx context.Context, query PayableDocumentsQuery) ([]payables.Document, error)
}
