package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	slowQueryBefore = "shelflog:query_start"
	slowQueryAfter  = "shelflog:slow_query"
)

type queryStartKey struct{}

// InstrumentDB registers otelgorm on db plus a callback that tags slow or
// failed statements on the active span. It does nothing when DB tracing is off.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, driver string, tp trace.TracerProvider, logger *zap.Logger) error {
	if !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(dbSystem(driver)),
		otelgorm.WithTracerProvider(tp),
	}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	threshold := cfg.DBSlowQueryThresh
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, threshold) }

	cb := db.Callback()
	regs := []error{
		cb.Create().Before("gorm:create").Register(slowQueryBefore, before),
		cb.Create().After("gorm:create").Register(slowQueryAfter, after),
		cb.Query().Before("gorm:query").Register(slowQueryBefore, before),
		cb.Query().After("gorm:query").Register(slowQueryAfter, after),
		cb.Row().Before("gorm:row").Register(slowQueryBefore, before),
		cb.Row().After("gorm:row").Register(slowQueryAfter, after),
		cb.Raw().Before("gorm:raw").Register(slowQueryBefore, before),
		cb.Raw().After("gorm:raw").Register(slowQueryAfter, after),
	}
	if err := errors.Join(regs...); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", threshold),
	)
	return nil
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}

func annotateSpan(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
