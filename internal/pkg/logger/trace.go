package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 定义 Context 中的 Key
const TraceIDKey = "trace_id"

// ContextHandler 包装器，从 ctx 中提取 trace_id 附加到每条记录
type ContextHandler struct {
	next log.Handler
}

func NewContextHandler(next log.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs 保持包装关系，派生 logger 依然携带 trace_id
func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}
