package database

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/utafrali/storefront/pkg/database"

// Values for the db.system span attribute.
const (
	SystemPostgres = "postgresql"
	SystemRedis    = "redis"
)

var slowOps struct {
	mu        sync.RWMutex
	threshold time.Duration
	logger    *slog.Logger
}

// SetSlowOperationLogging makes TraceOperation warn about calls slower than
// threshold. Zero disables it.
func SetSlowOperationLogging(threshold time.Duration, logger *slog.Logger) {
	slowOps.mu.Lock()
	defer slowOps.mu.Unlock()
	slowOps.threshold = threshold
	slowOps.logger = logger
}

func slowOpConfig() (time.Duration, *slog.Logger) {
	slowOps.mu.RLock()
	defer slowOps.mu.RUnlock()
	return slowOps.threshold, slowOps.logger
}

// TraceOperation starts a client span for one storage call and returns the
// function that ends it:
//
//	ctx, end := database.TraceOperation(ctx, database.SystemRedis, "GetSnapshot", "GET cart:*")
//	defer func() { end(err) }()
func TraceOperation(ctx context.Context, system, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, system+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		threshold, logger := slowOpConfig()
		if threshold <= 0 || logger == nil {
			return
		}
		if elapsed := time.Since(start); elapsed >= threshold {
			attrs := []any{
				slog.String("db_system", system),
				slog.String("operation", operation),
				slog.String("statement", statement),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			logger.WarnContext(ctx, "slow storage operation", attrs...)
		}
	}
}
