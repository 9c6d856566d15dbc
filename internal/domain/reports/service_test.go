package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpreports/internal/core/apperror"
	"erpreports/internal/domain/filter"
	"erpreports/internal/domain/payables"
)

var clock = func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

func newTestService(repo *MockRepository) *Service {
	return NewService(repo, payables.NewEngine(clock))
}

func sale(id int64, day int) Row {
	return Row{
		"id_movimiento": id,
		"fecha":         time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC),
	}
}

func ids(rows []Row) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r["id_movimiento"].(int64)
	}
	return out
}

func TestSales_MergesRemisionesInOrder(t *testing.T) {
	repo := &MockRepository{
		SalesFunc: func(_ context.Context, f SalesFilter) ([]Row, error) {
			return []Row{sale(10, 20), sale(8, 10)}, nil
		},
		RemisionesFunc: func(_ context.Context, f SalesFilter) ([]Row, error) {
			return []Row{sale(12, 20), sale(3, 15)}, nil
		},
	}

	rows, err := newTestService(repo).Sales(t.Context(), SalesFilter{IncludeRemisiones: true, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 10, 3}, ids(rows))
	assert.Equal(t, 2, repo.Calls)
}

func TestSales_DateBoundedKeepsAllRows(t *testing.T) {
	r := filter.YearRange(2024)
	repo := &MockRepository{
		SalesFunc: func(_ context.Context, f SalesFilter) ([]Row, error) {
			return []Row{sale(1, 1), sale(2, 2)}, nil
		},
		RemisionesFunc: func(_ context.Context, f SalesFilter) ([]Row, error) {
			return []Row{sale(3, 3)}, nil
		},
	}

	rows, err := newTestService(repo).Sales(t.Context(), SalesFilter{Dates: &r, IncludeRemisiones: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, ids(rows))
}

func TestSales_WithoutRemisionesSkipsSecondQuery(t *testing.T) {
	repo := &MockRepository{}
	var got SalesFilter
	repo.SalesFunc = func(_ context.Context, f SalesFilter) ([]Row, error) {
		got = f
		return []Row{}, nil
	}

	_, err := newTestService(repo).Sales(t.Context(), SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Calls)
	assert.Equal(t, filter.DefaultRawLimit, got.Limit)
}

func TestSales_UpstreamFailure(t *testing.T) {
	repo := &MockRepository{
		RemisionesFunc: func(_ context.Context, f SalesFilter) ([]Row, error) {
			return nil, errors.New("deadlock victim")
		},
	}

	_, err := newTestService(repo).Sales(t.Context(), SalesFilter{IncludeRemisiones: true})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUpstreamQuery, appErr.Code)
	assert.Equal(t, ReportSales, appErr.Details["report"])
}

func TestPurchases_DefaultLimits(t *testing.T) {
	var got []int
	repo := &MockRepository{
		PurchasesFunc: func(_ context.Context, f PurchasesFilter) ([]Row, error) {
			got = append(got, f.Limit)
			return []Row{}, nil
		},
	}
	svc := newTestService(repo)

	for _, shape := range []filter.PurchasesShape{filter.PurchasesRaw, filter.PurchasesTopSuppliers, filter.PurchasesTopProducts} {
		_, err := svc.Purchases(t.Context(), PurchasesFilter{Shape: shape})
		require.NoError(t, err)
	}
	_, err := svc.Purchases(t.Context(), PurchasesFilter{Shape: filter.PurchasesRaw, Limit: 5000})
	require.NoError(t, err)

	assert.Equal(t, []int{100, 10, 10, 1000}, got)
}

func TestGoals_MonthWithoutYearUsesCurrentYear(t *testing.T) {
	var got GoalsFilter
	repo := &MockRepository{
		GoalsFunc: func(_ context.Context, f GoalsFilter) ([]Row, error) {
			got = f
			return []Row{}, nil
		},
	}

	_, err := newTestService(repo).Goals(t.Context(), GoalsFilter{Month: 3})
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year)
}

func TestPayables_TrueBalanceQuery(t *testing.T) {
	r := filter.YearRange(2023)
	supplier := int64(4)
	var got PayableDocumentsQuery
	repo := &MockRepository{
		PayableDocumentsFunc: func(_ context.Context, q PayableDocumentsQuery) ([]payables.Document, error) {
			got = q
			due := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
			return []payables.Document{
				{ID: 1, SupplierID: 4, Nature: 1, Pending: decimal.NewFromInt(100), DueDate: &due},
				{ID: 2, SupplierID: 4, Nature: 0, Pending: decimal.NewFromInt(40)},
			}, nil
		},
	}

	out, err := newTestService(repo).Payables(t.Context(), PayablesFilter{SupplierID: &supplier, Dates: &r, View: filter.PayablesSupplier})
	require.NoError(t, err)

	assert.True(t, got.DebtsOnlyWindow)
	assert.Equal(t, &r, got.Window)
	assert.Equal(t, &supplier, got.SupplierID)

	rows, ok := out.([]payables.SupplierBalance)
	require.True(t, ok, "got %T", out)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Balance.Equal(decimal.RequireFromString("60")))
	assert.True(t, rows[0].Overdue.Equal(decimal.RequireFromString("100")))
}

func TestPayables_MonthlyUsesWholeYear(t *testing.T) {
	var got PayableDocumentsQuery
	repo := &MockRepository{
		PayableDocumentsFunc: func(_ context.Context, q PayableDocumentsQuery) ([]payables.Document, error) {
			got = q
			return nil, nil
		},
	}

	out, err := newTestService(repo).Payables(t.Context(), PayablesFilter{View: filter.PayablesMonthly})
	require.NoError(t, err)

	require.NotNil(t, got.Window)
	assert.Equal(t, filter.YearRange(2024), *got.Window)
	assert.False(t, got.DebtsOnlyWindow)
	assert.Equal(t, []payables.MonthTotal{}, out)
}

func TestPayables_ViewDispatch(t *testing.T) {
	svc := newTestService(&MockRepository{})

	tests := []struct {
		view filter.PayablesView
		want any
	}{
		{filter.PayablesSupplier, []payables.SupplierBalance{}},
		{filter.PayablesBucket, []payables.BucketTotal{}},
		{filter.PayablesDetail, []payables.DetailLine{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			out, err := svc.Payables(t.Context(), PayablesFilter{View: tt.view})
			require.NoError(t, err)
			assert.IsType(t, tt.want, out)
		})
	}

	out, err := svc.Payables(t.Context(), PayablesFilter{View: filter.PayablesStatus})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestSortRowsDesc_NullsLast(t *testing.T) {
	rows := []Row{
		{"fecha": nil, "id_movimiento": int64(9)},
		{"fecha": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "id_movimiento": int32(1)},
		{"fecha": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "id_movimiento": int64(5)},
		{"fecha": time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "id_movimiento": int64(2)},
	}

	SortRowsDesc(rows, "fecha", "id_movimiento")

	assert.Equal(t, int64(2), rows[0]["id_movimiento"])
	assert.Equal(t, int64(5), rows[1]["id_movimiento"])
	assert.Equal(t, int32(1), rows[2]["id_movimiento"])
	assert.Equal(t, int64(9), rows[3]["id_movimiento"])
}
