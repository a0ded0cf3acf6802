package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 请求链路标识在 Context 与日志中的键名
const TraceIDKey = "trace_id"

// TraceHandler slog 包装层：每条日志自动带上 ctx 里的 trace_id，
// 让一次请求（或一轮定时任务）的全部日志可以串起来。
type TraceHandler struct {
	log.Handler
}

func (h *TraceHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
