package reports

import (
	"context"

	"erpreports/internal/domain/payables"
)

// MockRepository is a test implementation of Repository.
// Unset functions return empty results; Calls counts every invocation.
type MockRepository struct {
	SalesFunc            func(ctx context.Context, f SalesFilter) ([]Row, error)
	RemisionesFunc       func(ctx context.Context, f SalesFilter) ([]Row, error)
	ReceivablesFunc      func(ctx context.Context, f ReceivablesFilter) ([]Row, error)
	ClientsFunc          func(ctx context.Context, f ClientsFilter) ([]Row, error)
	GoalsFunc            func(ctx context.Context, f GoalsFilter) ([]Row, error)
	InventoryFunc        func(ctx context.Context, f InventoryFilter) ([]Row, error)
	PurchasesFunc        func(ctx context.Context, f PurchasesFilter) ([]Row, error)
	SupplierPaymentsFunc func(ctx context.Context, f SupplierPaymentsFilter) ([]Row, error)
	PayableDocumentsFunc func(ctx context.Context, q PayableDocumentsQuery) ([]payables.Document, error)

	Calls int
}

// Ensure compile-time interface compliance.
var _ Repository = (*MockRepository)(nil)

func callRows[F any](m *MockRepository, fn func(context.Context, F) ([]Row, error), ctx context.Context, f F) ([]Row, error) {
	m.Calls++
	if fn != nil {
		return fn(ctx, f)
	}
	return []Row{}, nil
}

// Sales implements Repository.
func (m *MockRepository) Sales(ctx context.Context, f SalesFilter) ([]Row, error) {
	return callRows(m, m.SalesFunc, ctx, f)
}

// Remisiones implements Repository.
func (m *MockRepository) Remisiones(ctx context.Context, f SalesFilter) ([]Row, error) {
	return callRows(m, m.RemisionesFunc, ctx, f)
}

// Receivables implements Repository.
func (m *MockRepository) Receivables(ctx context.Context, f ReceivablesFilter) ([]Row, error) {
	return callRows(m, m.ReceivablesFunc, ctx, f)
}

// Clients implements Repository.
func (m *MockRepository) Clients(ctx context.Context, f ClientsFilter) ([]Row, error) {
	return callRows(m, m.ClientsFunc, ctx, f)
}

// Goals implements Repository.
func (m *MockRepository) Goals(ctx context.Context, f GoalsFilter) ([]Row, error) {
	return callRows(m, m.GoalsFunc, ctx, f)
}

// Inventory implements Repository.
func (m *MockRepository) Inventory(ctx context.Context, f InventoryFilter) ([]Row, error) {
	return callRows(m, m.InventoryFunc, ctx, f)
}

// Purchases implements Repository.
func (m *MockRepository) Purchases(ctx context.Context, f PurchasesFilter) ([]Row, error) {
	return callRows(m, m.PurchasesFunc, ctx, f)
}

// SupplierPayments implements Repository.
func (m *MockRepository) SupplierPayments(ctx context.Context, f SupplierPaymentsFilter) ([]Row, error) {
	return callRows(m, m.SupplierPaymentsFunc, ctx, f)
}

// PayableDocuments implements Repository.
func (m *MockRepository) PayableDocuments(ctx context.Context, q PayableDocumentsQuery) ([]payables.Document, error) {
	m.Calls++
	if m.PayableDocumentsFunc != nil {
		return m.PayableDocumentsFunc(ctx, q)
	}
	return nil, nil
}
