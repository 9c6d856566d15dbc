package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpreports/internal/domain/filter"
	"erpreports/internal/domain/payables"
	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/http/v1/dto"
	"erpreports/pkg/logger"
)

const testKey = "s3cret"

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestHandler(repo *reports.MockRepository, db fakePinger) http.Handler {
	clock := func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }
	return NewHandler(RouterConfig{
		DB:      db,
		Reports: reports.NewService(repo, payables.NewEngine(clock)),
		Logger:  logger.Nop(),
		APIKey:  testKey,
	})
}

func do(h http.Handler, path string, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth_IsPublic(t *testing.T) {
	h := newTestHandler(&reports.MockRepository{}, fakePinger{})

	rec := do(h, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(h, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthReady_DatabaseDown(t *testing.T) {
	h := newTestHandler(&reports.MockRepository{}, fakePinger{err: errors.New("tcp 10.0.0.5:1433: i/o timeout")})

	rec := do(h, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestAPIKey_RejectsBeforeDatabase(t *testing.T) {
	paths := []string{"/ventas", "/cobranza", "/inventario", "/compras", "/cxp", "/pagos-proveedores", "/clientes", "/metas"}

	for _, key := range []string{"", "wrong", testKey + "x"} {
		for _, path := range paths {
			t.Run(path+"/"+key, func(t *testing.T) {
				repo := &reports.MockRepository{}
				rec := do(newTestHandler(repo, fakePinger{}), path, key)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
				assert.Zero(t, repo.Calls, "repository must not be reached")
			})
		}
	}
}

func TestInvalidMonth_RejectedBeforeDatabase(t *testing.T) {
	for _, path := range []string{
		"/ventas?year=2024&month=0",
		"/ventas?year=2024&month=13",
		"/cobranza?month=13",
		"/cxp?year=2024&month=0",
		"/metas?month=13",
	} {
		t.Run(path, func(t *testing.T) {
			repo := &reports.MockRepository{}
			rec := do(newTestHandler(repo, fakePinger{}), path, testKey)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "INVALID_FILTER", body.Code)
			assert.Equal(t, "month", body.Details["param"])
			assert.Zero(t, repo.Calls)
		})
	}
}

func TestInvalidFilters(t *testing.T) {
	tests := []struct {
		path  string
		param string
	}{
		{"/ventas?cliente=abc", "cliente"},
		{"/ventas?startDate=2024-13-01&endDate=2024-12-31", "startDate"},
		{"/ventas?startDate=2024-02-10&endDate=2024-02-01", "endDate"},
		{"/ventas?remisiones=maybe", "remisiones"},
		{"/inventario?minStock=lots", "minStock"},
		{"/compras?limit=ten", "limit"},
		{"/cxp?proveedor=-4", "proveedor"},
		{"/pagos-proveedores?year=20x4", "year"},
		{"/clientes?status=x", "status"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			repo := &reports.MockRepository{}
			rec := do(newTestHandler(repo, fakePinger{}), tt.path, testKey)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.param, decodeError(t, rec).Details["param"])
			assert.Zero(t, repo.Calls)
		})
	}
}

func TestLimit_ClampedBeforeRepository(t *testing.T) {
	// each endpoint reports the limit its repository call received
	endpoints := []struct {
		path string
		repo func(got *int) *reports.MockRepository
	}{
		{"/ventas", func(got *int) *reports.MockRepository {
			return &reports.MockRepository{SalesFunc: func(_ context.Context, f reports.SalesFilter) ([]reports.Row, error) {
				*got = f.Limit
				return []reports.Row{}, nil
			}}
		}},
		{"/compras", func(got *int) *reports.MockRepository {
			return &reports.MockRepository{PurchasesFunc: func(_ context.Context, f reports.PurchasesFilter) ([]reports.Row, error) {
				*got = f.Limit
				return []reports.Row{}, nil
			}}
		}},
		{"/pagos-proveedores", func(got *int) *reports.MockRepository {
			return &reports.MockRepository{SupplierPaymentsFunc: func(_ context.Context, f reports.SupplierPaymentsFilter) ([]reports.Row, error) {
				*got = f.Limit
				return []reports.Row{}, nil
			}}
		}},
		{"/clientes", func(got *int) *reports.MockRepository {
			return &reports.MockRepository{ClientsFunc: func(_ context.Context, f reports.ClientsFilter) ([]reports.Row, error) {
				*got = f.Limit
				return []reports.Row{}, nil
			}}
		}},
	}
	limits := []struct {
		query string
		want  int
	}{
		{"", 100},
		{"limit=0", 1},
		{"limit=-20", 1},
		{"limit=50", 50},
		{"limit=99999", 1000},
	}

	for _, ep := range endpoints {
		for _, lim := range limits {
			t.Run(ep.path+"?"+lim.query, func(t *testing.T) {
				got := -1
				rec := do(newTestHandler(ep.repo(&got), fakePinger{}), ep.path+"?"+lim.query, testKey)

				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				assert.Equal(t, lim.want, got)
			})
		}

		t.Run(ep.path+"?limit=abc", func(t *testing.T) {
			got := -1
			repo := ep.repo(&got)
			rec := do(newTestHandler(repo, fakePinger{}), ep.path+"?limit=abc", testKey)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "limit", decodeError(t, rec).Details["param"])
			assert.Zero(t, repo.Calls)
		})
	}
}

func TestLimit_TopShapesDefaultToTen(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"?top=suppliers", 10},
		{"?top=products", 10},
		{"?top=products&limit=5000", 1000},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got reports.PurchasesFilter
			repo := &reports.MockRepository{
				PurchasesFunc: func(_ context.Context, f reports.PurchasesFilter) ([]reports.Row, error) {
					got = f
					return []reports.Row{}, nil
				},
			}

			rec := do(newTestHandler(repo, fakePinger{}), "/compras"+tt.query, testKey)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestSales_FiltersReachRepository(t *testing.T) {
	var got reports.SalesFilter
	repo := &reports.MockRepository{
		SalesFunc: func(_ context.Context, f reports.SalesFilter) ([]reports.Row, error) {
			got = f
			return []reports.Row{{"id_movimiento": int64(1)}}, nil
		},
	}

	rec := do(newTestHandler(repo, fakePinger{}),
		"/ventas?startDate=2024-01-15&endDate=2024-01-15&cliente=12&search=%20acme%20&remisiones=false", testKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id_movimiento":1}]`, rec.Body.String())

	require.NotNil(t, got.Dates)
	assert.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC), got.Dates.To)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, int64(12), *got.ClientID)
	assert.Equal(t, "acme", got.Search)
	assert.False(t, got.IncludeRemisiones)
	assert.Equal(t, 1, repo.Calls)
}

func TestPayables_DefaultSupplierView(t *testing.T) {
	var got reports.PayableDocumentsQuery
	repo := &reports.MockRepository{
		PayableDocumentsFunc: func(_ context.Context, q reports.PayableDocumentsQuery) ([]payables.Document, error) {
			got = q
			due := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
			name := "ACME"
			return []payables.Document{
				{ID: 1, SupplierID: 7, Supplier: &name, Nature: 1, Pending: decimal.NewFromInt(100), DueDate: &due},
				{ID: 2, SupplierID: 7, Supplier: &name, Nature: 0, Pending: decimal.NewFromInt(40)},
			}, nil
		},
	}

	rec := do(newTestHandler(repo, fakePinger{}), "/cxp?year=2024&month=3", testKey)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(60), rows[0]["saldo_real"])
	assert.Equal(t, float64(100), rows[0]["saldo_vencido"])
	assert.Equal(t, "ACME", rows[0]["proveedor"])

	assert.True(t, got.DebtsOnlyWindow)
	require.NotNil(t, got.Window)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), got.Window.To)
}

func TestPayables_StatusAlwaysTwoRows(t *testing.T) {
	rec := do(newTestHandler(&reports.MockRepository{}, fakePinger{}), "/cxp?groupBy=status", testKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"estado":"vencido","saldo_total":0,"proveedores":0},{"estado":"corriente","saldo_total":0,"proveedores":0}]`,
		rec.Body.String())
}

func TestUpstreamFailure_HidesCause(t *testing.T) {
	repo := &reports.MockRepository{
		InventoryFunc: func(context.Context, reports.InventoryFilter) ([]reports.Row, error) {
			return nil, errors.New("mssql: Invalid object name 'dbo.v_inventario_actual'")
		},
	}

	rec := do(newTestHandler(repo, fakePinger{}), "/inventario", testKey)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "UPSTREAM_QUERY_FAILURE", body.Code)
	assert.Equal(t, "inventario", body.Details["report"])
	assert.NotContains(t, rec.Body.String(), "dbo.")
}

func TestEmptyResultIsArray(t *testing.T) {
	rec := do(newTestHandler(&reports.MockRepository{}, fakePinger{}), "/clientes", testKey)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	rec := do(newTestHandler(&reports.MockRepository{}, fakePinger{}), "/nope", testKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestGzipWhenAccepted(t *testing.T) {
	repo := &reports.MockRepository{
		GoalsFunc: func(_ context.Context, f reports.GoalsFilter) ([]reports.Row, error) {
			assert.Equal(t, filter.GoalsByMonth, f.Shape)
			rows := make([]reports.Row, 200)
			for i := range rows {
				rows[i] = reports.Row{"cliente_name": strings.Repeat("x", 40), "mes": i}
			}
			return rows, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/metas?groupBy=month", nil)
	req.Header.Set("X-API-Key", testKey)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	newTestHandler(repo, fakePinger{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}
