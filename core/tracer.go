package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/nulltea/evaldomain"

type Span struct {
	name      string
	startTime time.Time
	parent    *Span
	depth     int

	ctx  context.Context
	span trace.Span
}

var (
	mu sync.Mutex
)

// StartSpan starts a new span with the given name and optional parent span.
// Spans are also recorded on the global OpenTelemetry tracer provider.
func StartSpan(name string, parent *Span, message ...string) *Span {
	mu.Lock()
	defer mu.Unlock()

	depth := 0
	ctx := context.Background()
	if parent != nil {
		depth = parent.depth + 1
		ctx = parent.ctx
	}

	ctx, otelSpan := otel.Tracer(tracerName).Start(ctx, name)

	span := &Span{
		name:      name,
		startTime: time.Now(),
		parent:    parent,
		depth:     depth,
		ctx:       ctx,
		span:      otelSpan,
	}

	// Print start message for root spans
	if len(message) > 0 {
		Logger().Info(strings.Join(message, " "))
	}

	return span
}

// WithSpan executes the given function within a span and returns its result
func WithSpan[T any](name string, parent *Span, fn func(*Span) T) T {
	span := StartSpan(name, parent)
	defer span.End()
	return fn(span)
}

// SetAttributes attaches key/value pairs to the underlying OpenTelemetry span.
func (s *Span) SetAttributes(kv ...attribute.KeyValue) {
	s.span.SetAttributes(kv...)
}

// End ends the span and logs its duration
func (s *Span) End() time.Duration {
	duration := time.Since(s.startTime)
	s.span.End()
	indent := strings.Repeat("  ", s.depth)
	Logger().V(1).Info(indent+s.name, "elapsed", duration)
	return duration
}
