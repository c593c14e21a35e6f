package logger

import (
	"context"
	log "log/slog"
)

// TeeHandler 将日志同时分发到本地与远程 Handler
type TeeHandler struct {
	handlers []log.Handler
}

func NewTeeHandler(handlers ...log.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (s *TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	// 任一下游接收即处理，各自的过滤交给各自的 Handler
	for _, h := range s.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s *TeeHandler) Handle(ctx context.Context, r log.Record) error {
	var firstErr error
	for _, h := range s.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		// 单个下游失败不阻断其余下游
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	newHandlers := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: newHandlers}
}

func (s *TeeHandler) WithGroup(name string) log.Handler {
	newHandlers := make([]log.Handler, len(s.handlers))
	for i, h := range s.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: newHandlers}
}

// RemoteFilterHandler 只把带 trace_id 的请求日志转发给远程端，
// 启动与后台日志留在本地
type RemoteFilterHandler struct {
	next log.Handler
}

func NewRemoteFilterHandler(next log.Handler) *RemoteFilterHandler {
	return &RemoteFilterHandler{next: next}
}

func (s *RemoteFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *RemoteFilterHandler) Handle(ctx context.Context, r log.Record) error {
	hasTraceID := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			hasTraceID = true
			return false
		}
		return true
	})

	if !hasTraceID {
		return nil
	}

	return s.next.Handle(ctx, r)
}

func (s *RemoteFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithAttrs(attrs)}
}

func (s *RemoteFilterHandler) WithGroup(name string) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithGroup(name)}
}
