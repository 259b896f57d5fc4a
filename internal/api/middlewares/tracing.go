package middlewares

import (
	"net/http"

	"github.com/pegkeeper/dollar-protocol-service/internal/observability/tracing"
)

const traceIdHeader = "X-Trace-Id"

// TracingMiddleware starts a trace for the request and echoes its id back.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.AttachTracingIntoContext(r.Context())
		if traceId, ok := ctx.Value(tracing.TraceIdKey).(string); ok {
			w.Header().Set(traceIdHeader, traceId)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
