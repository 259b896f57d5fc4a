package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TracingContextKey string

const TracingInfoKey = TracingContextKey("requestTracingInfo")
const TraceIdKey = TracingContextKey("requestTraceId")

type SpanDetail struct {
	Name     string
	Duration int64
}

type TracingInfo struct {
	SpanDetails []SpanDetail
}

func (t *TracingInfo) addSpanDetail(detail SpanDetail) {
	t.SpanDetails = append(t.SpanDetails, detail)
}

// AttachTracingIntoContext gives the request a trace id and an empty span list.
func AttachTracingIntoContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, TraceIdKey, uuid.NewString())
	return context.WithValue(ctx, TracingInfoKey, &TracingInfo{})
}

// WrapWithSpan times next and records it on the request, if the request is
// traced. Calls outside of a request, such as the keeper, are not traced.
func WrapWithSpan[Result any](ctx context.Context, name string, next func() (Result, error)) (Result, error) {
	tracingInfo, ok := ctx.Value(TracingInfoKey).(*TracingInfo)
	if !ok {
		log.Ctx(ctx).Debug().Str("span", name).Msg("tracing info not found in context")
		return next()
	}

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Milliseconds()
		tracingInfo.addSpanDetail(SpanDetail{Name: name, Duration: duration})
	}()

	return next()
}
