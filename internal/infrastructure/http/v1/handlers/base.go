// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"erpreports/internal/core/apperror"
	appctx "erpreports/internal/core/context"
	"erpreports/internal/infrastructure/http/v1/middleware"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindQuery binds query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewInvalidFilter("query", "invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// SetReport tags the request with its report name for logs and traces.
func (h *BaseHandler) SetReport(c *gin.Context, report string) {
	appctx.SetReport(c.Request.Context(), report)
}

// Rows sends 200 with a JSON array and records its length for the request log.
func (h *BaseHandler) Rows(c *gin.Context, rows any) {
	if v := reflect.ValueOf(rows); v.Kind() == reflect.Slice {
		c.Set(middleware.ContextKeyRows, v.Len())
	}
	c.JSON(http.StatusOK, rows)
}
