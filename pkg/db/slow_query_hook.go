package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskboard/pkg/metrics"
)

type ctxKey string

const (
	ctxKeyQueryStart ctxKey = "query_start_time"
	ctxKeyQuerySQL   ctxKey = "query_sql"
)

// SlowQueryTracer logs queries slower than the threshold and records every
// query duration in the db_query_duration_seconds histogram.
type SlowQueryTracer struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

func NewSlowQueryTracer(logger *zap.Logger, slowThreshold time.Duration) *SlowQueryTracer {
	if slowThreshold == 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &SlowQueryTracer{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, ctxKeyQueryStart, time.Now())
	ctx = context.WithValue(ctx, ctxKeyQuerySQL, data.SQL)
	return ctx
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	startTime, ok := ctx.Value(ctxKeyQueryStart).(time.Time)
	if !ok {
		return
	}

	duration := time.Since(startTime)
	metrics.RecordDBQueryDuration(duration)

	if duration > t.slowThreshold {
		sql, _ := ctx.Value(ctxKeyQuerySQL).(string)
		if sql == "" {
			sql = "unknown"
		}
		if len(sql) > 200 {
			sql = sql[:200] + "..."
		}
		t.logger.Warn("Slow query detected",
			zap.String("sql", sql),
			zap.Duration("duration", duration),
			zap.Duration("threshold", t.slowThreshold),
		)
	}
}
