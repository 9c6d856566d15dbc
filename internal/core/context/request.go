// Package context carries per-request metadata through context.Context.
package context

import (
	"context"
)

// RequestContext identifies one inbound report request.
type RequestContext struct {
	TraceID   string
	RequestID string

	// Report is the endpoint name ("ventas", "cxp", ...), set once routing resolved it.
	Report string
}

type requestContextKey struct{}

// WithRequest adds RequestContext to context.
func WithRequest(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// GetRequest returns RequestContext from context.
func GetRequest(ctx context.Context) *RequestContext {
	if v, ok := ctx.Value(requestContextKey{}).(*RequestContext); ok {
		return v
	}
	return nil
}

// GetRequestID returns request ID from context or empty string.
func GetRequestID(ctx context.Context) string {
	if rc := GetRequest(ctx); rc != nil {
		return rc.RequestID
	}
	return ""
}

// SetReport records the report name on the request context, if present.
func SetReport(ctx context.Context, report string) {
	if rc := GetRequest(ctx); rc != nil {
		rc.Report = report
	}
}
