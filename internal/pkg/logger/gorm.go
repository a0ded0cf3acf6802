package logger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// 超过该耗时的语句按慢查询告警
const slowQueryThreshold = 200 * time.Millisecond

// GormSlogAdapter 把 gorm 的日志桥接到 slog，trace_id 随 ctx 透传
type GormSlogAdapter struct {
	level logger.LogLevel
}

func NewGormLogger() *GormSlogAdapter {
	return &GormSlogAdapter{level: logger.Info}
}

func (l *GormSlogAdapter) LogMode(level logger.LogLevel) logger.Interface {
	l.level = level
	return l
}

func (l *GormSlogAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		slog.InfoContext(ctx, msg, "data", data)
	}
}

func (l *GormSlogAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		slog.WarnContext(ctx, msg, "data", data)
	}
}

func (l *GormSlogAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		slog.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *GormSlogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	verb := "QUERY"
	if i := strings.IndexByte(sql, ' '); i > 0 {
		verb = strings.ToUpper(sql[:i])
	}
	msg := "SQL " + verb

	fields := []any{
		slog.String("sql", sql),
		slog.Duration("latency", elapsed),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		slog.ErrorContext(ctx, msg+" failed", append(fields, slog.Any("err", err))...)
	case elapsed > slowQueryThreshold:
		slog.WarnContext(ctx, msg+" slow", fields...)
	default:
		slog.InfoContext(ctx, msg, fields...)
	}
}
