package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "erpreports/internal/core/context"
	"erpreports/internal/core/id"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"
)

// Trace middleware adds request tracing context.
// Incoming IDs are kept when they are valid UUIDs, otherwise generated.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.OrNew(c.GetHeader(HeaderRequestID))
		traceID := id.OrNew(c.GetHeader(HeaderTraceID))

		rc := &appctx.RequestContext{
			TraceID:   traceID,
			RequestID: requestID,
		}
		c.Request = c.Request.WithContext(appctx.WithRequest(c.Request.Context(), rc))

		// Store in gin context for easy access
		c.Set("trace_id", traceID)
		c.Set("request_id", requestID)

		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}
