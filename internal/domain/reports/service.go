package reports

import (
	"context"

	"erpreports/internal/core/apperror"
	"erpreports/internal/domain/filter"
	"erpreports/internal/domain/payables"
)

// Service provides report generation operations.
type Service struct {
	repo   Repository
	engine *payables.Engine
}

// NewService creates a new reports service.
func NewService(repo Repository, engine *payables.Engine) *Service {
	if engine == nil {
		engine = payables.NewEngine(nil)
	}
	return &Service{repo: repo, engine: engine}
}

// Sales returns invoice rows, followed by delivery notes when requested.
// Merged rows keep the fecha DESC, id_movimiento DESC order of a single query.
func (s *Service) Sales(ctx context.Context, f SalesFilter) ([]Row, error) {
	f.Limit = limitOr(f.Limit, filter.DefaultRawLimit)

	rows, err := s.repo.Sales(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportSales, err)
	}
	if !f.IncludeRemisiones {
		return rows, nil
	}

	remisiones, err := s.repo.Remisiones(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportSales, err)
	}

	rows = append(rows, remisiones...)
	SortRowsDesc(rows, "fecha", "id_movimiento")
	if f.Dates == nil && len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	return rows, nil
}

// Receivables returns open receivable documents.
func (s *Service) Receivables(ctx context.Context, f ReceivablesFilter) ([]Row, error) {
	rows, err := s.repo.Receivables(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportReceivables, err)
	}
	return rows, nil
}

// Inventory returns current stock.
func (s *Service) Inventory(ctx context.Context, f InventoryFilter) ([]Row, error) {
	rows, err := s.repo.Inventory(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportInventory, err)
	}
	return rows, nil
}

// Purchases returns purchases in the requested shape.
func (s *Service) Purchases(ctx context.Context, f PurchasesFilter) ([]Row, error) {
	switch f.Shape {
	case filter.PurchasesTopSuppliers, filter.PurchasesTopProducts:
		f.Limit = limitOr(f.Limit, filter.DefaultTopLimit)
	default:
		f.Limit = limitOr(f.Limit, filter.DefaultRawLimit)
	}

	rows, err := s.repo.Purchases(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportPurchases, err)
	}
	return rows, nil
}

// SupplierPayments returns payments to suppliers in the requested shape.
func (s *Service) SupplierPayments(ctx context.Context, f SupplierPaymentsFilter) ([]Row, error) {
	f.Limit = limitOr(f.Limit, filter.DefaultRawLimit)

	rows, err := s.repo.SupplierPayments(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportSupplierPayments, err)
	}
	return rows, nil
}

// Clients returns the client catalog.
func (s *Service) Clients(ctx context.Context, f ClientsFilter) ([]Row, error) {
	f.Limit = limitOr(f.Limit, filter.DefaultRawLimit)

	rows, err := s.repo.Clients(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportClients, err)
	}
	return rows, nil
}

// Goals returns sales targets. A month without a year refers to the current year.
func (s *Service) Goals(ctx context.Context, f GoalsFilter) ([]Row, error) {
	if f.Year == 0 && f.Month > 0 {
		f.Year = s.engine.Now().Year()
	}

	rows, err := s.repo.Goals(ctx, f)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportGoals, err)
	}
	return rows, nil
}

// Payables evaluates the requested accounts-payable view.
// The result is one of the payables row slices, ready for JSON encoding.
func (s *Service) Payables(ctx context.Context, f PayablesFilter) (any, error) {
	q := PayableDocumentsQuery{
		SupplierID:      f.SupplierID,
		Window:          f.Dates,
		DebtsOnlyWindow: true,
	}
	if f.View == filter.PayablesMonthly {
		year := f.Year
		if year == 0 {
			year = s.engine.Now().Year()
		}
		window := filter.YearRange(year)
		q.Window = &window
		q.DebtsOnlyWindow = false
	}

	docs, err := s.repo.PayableDocuments(ctx, q)
	if err != nil {
		return nil, apperror.NewUpstreamQuery(ReportPayables, err)
	}

	switch f.View {
	case filter.PayablesStatus:
		return s.engine.Status(docs), nil
	case filter.PayablesBucket:
		return s.engine.Buckets(docs), nil
	case filter.PayablesDetail:
		return s.engine.Detail(docs), nil
	case filter.PayablesMonthly:
		return s.engine.Monthly(docs), nil
	default:
		return s.engine.Suppliers(docs), nil
	}
}

func limitOr(n, def int) int {
	if n <= 0 {
		n = def
	}
	return filter.ClampLimit(n)
}
