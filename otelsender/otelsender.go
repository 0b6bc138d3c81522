// Package otelsender is an analytics backend that records every event as a
// span on an OpenTelemetry tracer.
package otelsender

import (
	"context"
	"fmt"
	"sort"

	ripple "github.com/Tap30/ripple-analytics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Tap30/ripple-analytics/otelsender"

// Analytics turns each logged event into a zero-length span named after it,
// with the params as span attributes.
type Analytics struct {
	tracer trace.Tracer
}

var _ ripple.Analytics = (*Analytics)(nil)

func New(tp trace.TracerProvider) *Analytics {
	return &Analytics{tracer: tp.Tracer(instrumentationName)}
}

func (a *Analytics) LogEvent(name string, params ripple.Params) {
	_, span := a.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(Attributes(params)...),
	)
	span.End()
}

// Attributes converts params to span attributes sorted by key. Values
// without a native attribute type are formatted with %v.
func Attributes(params ripple.Params) []attribute.KeyValue {
	if len(params) == 0 {
		return nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, toAttribute(k, params[k]))
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int8:
		return attribute.Int64(key, int64(v))
	case int16:
		return attribute.Int64(key, int64(v))
	case int32:
		return attribute.Int64(key, int64(v))
	case int64:
		return attribute.Int64(key, v)
	case uint8:
		return attribute.Int64(key, int64(v))
	case uint16:
		return attribute.Int64(key, int64(v))
	case uint32:
		return attribute.Int64(key, int64(v))
	case float32:
		return attribute.Float64(key, float64(v))
	case float64:
		return attribute.Float64(key, v)
	default:
		// uint and uint64 may overflow int64
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// AppContext binds EventSenders to a TracerProvider.
type AppContext struct {
	TracerProvider trace.TracerProvider
}

var _ ripple.AppContext = (*AppContext)(nil)

func (c *AppContext) Analytics() (ripple.Analytics, error) {
	if c.TracerProvider == nil {
		return nil, fmt.Errorf("otelsender: no tracer provider configured")
	}
	return New(c.TracerProvider), nil
}
