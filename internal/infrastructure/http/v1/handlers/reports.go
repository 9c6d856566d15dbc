package handlers

import (
	"github.com/gin-gonic/gin"

	"erpreports/internal/domain/reports"
	"erpreports/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
// Every filter is validated before the service, and so the database, is called.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/ventas", h.Sales)
	rg.GET("/cobranza", h.Receivables)
	rg.GET("/inventario", h.Inventory)
	rg.GET("/compras", h.Purchases)
	rg.GET("/cxp", h.Payables)
	rg.GET("/pagos-proveedores", h.SupplierPayments)
	rg.GET("/clientes", h.Clients)
	rg.GET("/metas", h.Goals)
}

// Sales handles GET /ventas
func (h *ReportsHandler) Sales(c *gin.Context) {
	h.SetReport(c, reports.ReportSales)

	var req dto.SalesRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Sales(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// Receivables handles GET /cobranza
func (h *ReportsHandler) Receivables(c *gin.Context) {
	h.SetReport(c, reports.ReportReceivables)

	var req dto.ReceivablesRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Receivables(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// Inventory handles GET /inventario
func (h *ReportsHandler) Inventory(c *gin.Context) {
	h.SetReport(c, reports.ReportInventory)

	var req dto.InventoryRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Inventory(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// Purchases handles GET /compras
func (h *ReportsHandler) Purchases(c *gin.Context) {
	h.SetReport(c, reports.ReportPurchases)

	var req dto.PurchasesRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Purchases(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// Payables handles GET /cxp
func (h *ReportsHandler) Payables(c *gin.Context) {
	h.SetReport(c, reports.ReportPayables)

	var req dto.PayablesRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Payables(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// SupplierPayments handles GET /pagos-proveedores
func (h *ReportsHandler) SupplierPayments(c *gin.Context) {
	h.SetReport(c, reports.ReportSupplierPayments)

	var req dto.SupplierPaymentsRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.SupplierPayments(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// Clients handles GET /clientes
func (h *ReportsHandler) Clients(c *gin.Context) {
	h.SetReport(c, reports.ReportClients)

	var req dto.ClientsRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Clients(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}

// Goals handles GET /metas
func (h *ReportsHandler) Goals(c *gin.Context) {
	h.SetReport(c, reports.ReportGoals)

	var req dto.GoalsRequest
	if !h.BindQuery(c, &req) {
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.Goals(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Rows(c, rows)
}
