package dto

import (
	"strings"

	"erpreports/internal/domain/filter"
	"erpreports/internal/domain/reports"
)

// Every field is a raw string so binding never fails; validation happens in
// the To*Filter conversions and yields INVALID_FILTER errors.

// --- Sales ---

// SalesRequest represents query parameters of GET /ventas.
type SalesRequest struct {
	DateQuery
	Client     string `form:"cliente"`
	Search     string `form:"search"`
	Limit      string `form:"limit"`
	Remisiones string `form:"remisiones"`
}

// ToFilter converts request to domain filter.
func (r SalesRequest) ToFilter() (reports.SalesFilter, error) {
	var f reports.SalesFilter
	var err error

	if f.Dates, err = r.Range(); err != nil {
		return f, err
	}
	if f.ClientID, err = filter.ParseID("cliente", r.Client); err != nil {
		return f, err
	}
	if f.Limit, err = filter.ParseLimit(r.Limit, filter.DefaultRawLimit); err != nil {
		return f, err
	}
	if f.IncludeRemisiones, err = filter.ParseBool("remisiones", r.Remisiones, true); err != nil {
		return f, err
	}
	f.Search = filter.Search(r.Search)
	return f, nil
}

// --- Receivables ---

// ReceivablesRequest represents query parameters of GET /cobranza.
type ReceivablesRequest struct {
	DateQuery
	Client string `form:"cliente"`
	Search string `form:"search"`
}

// ToFilter converts request to domain filter.
func (r ReceivablesRequest) ToFilter() (reports.ReceivablesFilter, error) {
	var f reports.ReceivablesFilter
	var err error

	if f.Dates, err = r.Range(); err != nil {
		return f, err
	}
	if f.ClientID, err = filter.ParseID("cliente", r.Client); err != nil {
		return f, err
	}
	f.Search = filter.Search(r.Search)
	return f, nil
}

// --- Inventory ---

// InventoryRequest represents query parameters of GET /inventario.
type InventoryRequest struct {
	Warehouse string `form:"almacen"`
	Product   string `form:"producto"`
	Status    string `form:"status"`
	MinStock  string `form:"minStock"`
	MaxStock  string `form:"maxStock"`
}

// ToFilter converts request to domain filter.
func (r InventoryRequest) ToFilter() (reports.InventoryFilter, error) {
	var f reports.InventoryFilter
	var err error

	if f.WarehouseID, err = filter.ParseID("almacen", r.Warehouse); err != nil {
		return f, err
	}
	if f.Status, err = filter.ParseInt("status", r.Status); err != nil {
		return f, err
	}
	if f.MinStock, err = filter.ParseDecimal("minStock", r.MinStock); err != nil {
		return f, err
	}
	if f.MaxStock, err = filter.ParseDecimal("maxStock", r.MaxStock); err != nil {
		return f, err
	}
	f.Product = filter.Search(r.Product)
	return f, nil
}

// --- Purchases ---

// PurchasesRequest represents query parameters of GET /compras.
type PurchasesRequest struct {
	DateQuery
	Supplier    string `form:"proveedor"`
	Product     string `form:"producto"`
	ConceptType string `form:"tipoConcepto"`
	GroupBy     string `form:"groupBy"`
	Top         string `form:"top"`
	Limit       string `form:"limit"`
}

// ToFilter converts request to domain filter.
func (r PurchasesRequest) ToFilter() (reports.PurchasesFilter, error) {
	var f reports.PurchasesFilter
	var err error

	if f.Dates, err = r.Range(); err != nil {
		return f, err
	}
	if f.SupplierID, err = filter.ParseID("proveedor", r.Supplier); err != nil {
		return f, err
	}
	if f.ProductID, err = filter.ParseID("producto", r.Product); err != nil {
		return f, err
	}

	f.Shape, f.Period = filter.ParsePurchasesShape(r.GroupBy, r.Top)

	def := filter.DefaultRawLimit
	if f.Shape == filter.PurchasesTopSuppliers || f.Shape == filter.PurchasesTopProducts {
		def = filter.DefaultTopLimit
	}
	if f.Limit, err = filter.ParseLimit(r.Limit, def); err != nil {
		return f, err
	}
	f.ConceptType = strings.TrimSpace(r.ConceptType)
	return f, nil
}

// --- Accounts payable ---

// PayablesRequest represents query parameters of GET /cxp.
type PayablesRequest struct {
	DateQuery
	Supplier string `form:"proveedor"`
	GroupBy  string `form:"groupBy"`
}

// ToFilter converts request to domain filter.
func (r PayablesRequest) ToFilter() (reports.PayablesFilter, error) {
	var f reports.PayablesFilter
	var err error

	if f.Dates, err = r.Range(); err != nil {
		return f, err
	}
	if f.Year, err = r.YearValue(); err != nil {
		return f, err
	}
	if f.SupplierID, err = filter.ParseID("proveedor", r.Supplier); err != nil {
		return f, err
	}
	f.View = filter.ParsePayablesView(r.GroupBy)
	return f, nil
}

// --- Supplier payments ---

// SupplierPaymentsRequest represents query parameters of GET /pagos-proveedores.
type SupplierPaymentsRequest struct {
	DateQuery
	Supplier    string `form:"proveedor"`
	PaymentType string `form:"tipoPago"`
	GroupBy     string `form:"groupBy"`
	Limit       string `form:"limit"`
}

// ToFilter converts request to domain filter.
func (r SupplierPaymentsRequest) ToFilter() (reports.SupplierPaymentsFilter, error) {
	var f reports.SupplierPaymentsFilter
	var err error

	if f.Dates, err = r.Range(); err != nil {
		return f, err
	}
	if f.SupplierID, err = filter.ParseID("proveedor", r.Supplier); err != nil {
		return f, err
	}
	if f.Limit, err = filter.ParseLimit(r.Limit, filter.DefaultRawLimit); err != nil {
		return f, err
	}
	f.Shape, f.Period = filter.ParsePaymentsShape(r.GroupBy)
	f.PaymentType = strings.TrimSpace(r.PaymentType)
	return f, nil
}

// --- Clients ---

// ClientsRequest represents query parameters of GET /clientes.
type ClientsRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Limit  string `form:"limit"`
}

// ToFilter converts request to domain filter.
func (r ClientsRequest) ToFilter() (reports.ClientsFilter, error) {
	var f reports.ClientsFilter
	var err error

	if f.Status, err = filter.ParseInt("status", r.Status); err != nil {
		return f, err
	}
	if f.Limit, err = filter.ParseLimit(r.Limit, filter.DefaultRawLimit); err != nil {
		return f, err
	}
	f.Search = filter.Search(r.Search)
	return f, nil
}

// --- Sales goals ---

// GoalsRequest represents query parameters of GET /metas.
type GoalsRequest struct {
	Year    string `form:"year"`
	Month   string `form:"month"`
	Client  string `form:"cliente"`
	GroupBy string `form:"groupBy"`
}

// ToFilter converts request to domain filter.
func (r GoalsRequest) ToFilter() (reports.GoalsFilter, error) {
	var f reports.GoalsFilter
	var err error

	if strings.TrimSpace(r.Year) != "" {
		if f.Year, err = filter.ParseYear(r.Year); err != nil {
			return f, err
		}
	}
	if f.Month, err = filter.ParseMonth(r.Month); err != nil {
		return f, err
	}
	if f.ClientID, err = filter.ParseID("cliente", r.Client); err != nil {
		return f, err
	}
	f.Shape = filter.ParseGoalsShape(r.GroupBy)
	return f, nil
}
