package logger

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

// 命令内容超长时截断，避免把整棵评论树打进日志
const maxCommandDetailLen = 1000

// NewMongoMonitor 返回命令监控器，慢查询阈值由调用方按配置传入
func NewMongoMonitor(slowQuery time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			cmdStr := evt.Command.String()
			if len(cmdStr) > maxCommandDetailLen {
				cmdStr = cmdStr[:maxCommandDetailLen] + "...[truncated]"
			}

			log.InfoContext(ctx, "MongoDB Started",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.String("request_id", fmt.Sprintf("%d", evt.RequestID)),
				log.String("cmd_detail", cmdStr),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			fields := []any{
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.String("request_id", fmt.Sprintf("%d", evt.RequestID)),
			}

			if slowQuery > 0 && evt.Duration > slowQuery {
				log.WarnContext(ctx, "MongoDB Slow", fields...)
			} else {
				log.InfoContext(ctx, "MongoDB Success", fields...)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB Error",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.String("request_id", fmt.Sprintf("%d", evt.RequestID)),
				log.Any("err", evt.Failure),
			)
		},
	}
}
