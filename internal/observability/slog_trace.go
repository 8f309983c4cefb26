package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/voyplan/triphub/internal/actorctx"
)

type TraceHandler struct {
	next slog.Handler
}

func NewTraceHandler(next slog.Handler) *TraceHandler {
	return &TraceHandler{next: next}
}

func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()

	if sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.next.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{next: h.next.WithGroup(name)}
}

// ActorHandler stamps the authenticated user id (when the request has one)
// onto every log record, same idea as TraceHandler for trace ids.
type ActorHandler struct {
	next slog.Handler
}

func NewActorHandler(next slog.Handler) *ActorHandler {
	return &ActorHandler{next: next}
}

func (h *ActorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ActorHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := actorctx.UserIDFrom(ctx); ok {
		r.AddAttrs(slog.String("user_id", id))
	}
	return h.next.Handle(ctx, r)
}

func (h *ActorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ActorHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ActorHandler) WithGroup(name string) slog.Handler {
	return &ActorHandler{next: h.next.WithGroup(name)}
}
