package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ShelfMetrics records the service's domain instruments. A nil *ShelfMetrics
// records nothing.
type ShelfMetrics struct {
	submitted   metric.Int64Counter
	rejected    metric.Int64Counter
	aggregation metric.Float64Histogram
	aggregated  metric.Int64Histogram
	trendCache  metric.Int64Counter
	notModified metric.Int64Counter
}

// NewShelfMetrics creates the instruments on meter
func NewShelfMetrics(meter metric.Meter) (*ShelfMetrics, error) {
	m := &ShelfMetrics{}
	var err error

	if m.submitted, err = meter.Int64Counter("shelflog.events.submitted",
		metric.WithDescription("Shelf events appended, by action"),
		metric.WithUnit("{event}")); err != nil {
		return nil, fmt.Errorf("failed to create submitted counter: %w", err)
	}
	if m.rejected, err = meter.Int64Counter("shelflog.events.rejected",
		metric.WithDescription("Submissions rejected, by error code"),
		metric.WithUnit("{event}")); err != nil {
		return nil, fmt.Errorf("failed to create rejected counter: %w", err)
	}
	if m.aggregation, err = meter.Float64Histogram("shelflog.trends.aggregation.duration",
		metric.WithDescription("Time spent computing a trend set"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000)); err != nil {
		return nil, fmt.Errorf("failed to create aggregation histogram: %w", err)
	}
	if m.aggregated, err = meter.Int64Histogram("shelflog.trends.aggregation.events",
		metric.WithDescription("Events folded into one trend set"),
		metric.WithUnit("{event}")); err != nil {
		return nil, fmt.Errorf("failed to create aggregated histogram: %w", err)
	}
	if m.trendCache, err = meter.Int64Counter("shelflog.trends.cache",
		metric.WithDescription("Trend cache lookups, by result")); err != nil {
		return nil, fmt.Errorf("failed to create trend cache counter: %w", err)
	}
	if m.notModified, err = meter.Int64Counter("shelflog.feeds.not_modified",
		metric.WithDescription("Feed reads answered from the client's revision, by scope kind")); err != nil {
		return nil, fmt.Errorf("failed to create not-modified counter: %w", err)
	}
	return m, nil
}

// RecordSubmitted counts an appended event
func (m *ShelfMetrics) RecordSubmitted(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

// RecordRejected counts a failed submission
func (m *ShelfMetrics) RecordRejected(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}

// RecordAggregation records one trend computation
func (m *ShelfMetrics) RecordAggregation(ctx context.Context, elapsed time.Duration, events int) {
	if m == nil {
		return
	}
	m.aggregation.Record(ctx, float64(elapsed.Microseconds())/1000)
	m.aggregated.Record(ctx, int64(events))
}

// RecordTrendCache counts a trend cache lookup
func (m *ShelfMetrics) RecordTrendCache(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.trendCache.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordNotModified counts a feed read short-circuited by revision
func (m *ShelfMetrics) RecordNotModified(ctx context.Context, scopeKind string) {
	if m == nil {
		return
	}
	m.notModified.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", scopeKind)))
}
