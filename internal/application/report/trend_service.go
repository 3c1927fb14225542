package report

import (
	"context"
	"time"

	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/report"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TrendResult is a trend set and the store revision it was computed at
type TrendResult struct {
	Trends     report.TrendSet
	Revision   int64
	EventCount int
	Cached     bool
}

// TrendService computes the store-wide trend projections
type TrendService struct {
	events    shelf.EventRepository
	items     catalog.ItemRepository
	revisions feed.RevisionStore
	cache     report.TrendCache
	cfg       config.ReportConfig
	metrics   *telemetry.ShelfMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewTrendService creates a new TrendService. cache may be nil.
func NewTrendService(
	events shelf.EventRepository,
	items catalog.ItemRepository,
	revisions feed.RevisionStore,
	cache report.TrendCache,
	cfg config.ReportConfig,
	logger *zap.Logger,
) *TrendService {
	return &TrendService{
		events:    events,
		items:     items,
		revisions: revisions,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// WithMetrics sets the instruments aggregations are recorded on
func (s *TrendService) WithMetrics(m *telemetry.ShelfMetrics) *TrendService {
	s.metrics = m
	return s
}

// Trends returns the trend set over every event. Managers only.
func (s *TrendService) Trends(ctx context.Context, profile *identity.Profile) (*TrendResult, error) {
	if profile == nil {
		return nil, shared.ErrUnauthorized
	}
	if !profile.IsManager() {
		return nil, shared.ErrForbidden
	}
	return s.current(ctx)
}

// Warm computes and caches the trend set for the current store revision if it
// is not cached yet. It reports whether a computation happened.
func (s *TrendService) Warm(ctx context.Context) (bool, error) {
	result, err := s.current(ctx)
	if err != nil {
		return false, err
	}
	return !result.Cached, nil
}

func (s *TrendService) current(ctx context.Context) (result *TrendResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "TrendService", "current")
	defer func() { telemetry.EndSpan(span, err) }()

	log := logger.Enrich(ctx, s.logger)

	revision, err := s.revisions.Current(ctx, feed.StoreScope().Key())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("trends.revision", revision))

	if s.cache != nil {
		set, ok, err := s.cache.Get(ctx, revision)
		if err != nil {
			log.Warn("Trend cache read failed, recomputing", zap.Error(err))
		}
		s.metrics.RecordTrendCache(ctx, ok)
		if ok {
			return &TrendResult{Trends: *set, Revision: revision, Cached: true}, nil
		}
	}

	enriched, err := s.fetch(ctx)
	if err != nil {
		log.Error("Failed to load events for trends", zap.Error(err))
		return nil, err
	}

	start := s.now()
	set := report.Aggregate(enriched,
		report.WithTopN(s.cfg.TopN),
		report.WithLocation(s.cfg.Location()),
	)
	elapsed := s.now().Sub(start)
	s.metrics.RecordAggregation(ctx, elapsed, len(enriched))

	log.Debug("Trends computed",
		zap.Int64("revision", revision),
		zap.Int("events", len(enriched)),
		zap.Duration("elapsed", elapsed))

	if s.cache != nil {
		if err := s.cache.Put(ctx, revision, set); err != nil {
			log.Warn("Trend cache write failed", zap.Error(err))
		}
	}

	return &TrendResult{Trends: set, Revision: revision, EventCount: len(enriched)}, nil
}

// fetch loads the full event set and the item catalog concurrently and joins them
func (s *TrendService) fetch(ctx context.Context) ([]shelf.EnrichedEvent, error) {
	var (
		page  *shelf.EventPage
		items []catalog.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.events.Query(gctx, shelf.EventFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// aggregation only groups by item, so authors are left unresolved
	return shelf.NewLookup(items, nil).EnrichAll(page.Rows), nil
}
