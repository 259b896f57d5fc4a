package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/observability/tracing"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		logger := log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		if traceId := r.Context().Value(tracing.TraceIdKey); traceId != nil {
			logger = logger.With().Interface("traceId", traceId).Logger()
		}

		logger.Debug().Msg("request received")
		r = r.WithContext(logger.WithContext(r.Context()))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// advances mutate state, so they are always worth an info line
		logEvent := logger.Debug()
		if r.Method != http.MethodGet || ww.Status() >= http.StatusInternalServerError {
			logEvent = logger.Info()
		}
		if tracingInfo := r.Context().Value(tracing.TracingInfoKey); tracingInfo != nil {
			logEvent = logEvent.Interface("tracingInfo", tracingInfo)
		}
		logEvent.
			Int("status", ww.Status()).
			Int64("requestDuration", time.Since(startTime).Milliseconds()).
			Msg("Request completed")
	})
}
