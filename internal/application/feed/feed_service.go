package feed

import (
	"context"

	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FeedService serves the per-user and store-wide event feeds
type FeedService struct {
	events    shelf.EventRepository
	items     catalog.ItemRepository
	profiles  identity.ProfileRepository
	revisions feed.RevisionStore
	cfg       config.FeedConfig
	metrics   *telemetry.ShelfMetrics
	logger    *zap.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	events shelf.EventRepository,
	items catalog.ItemRepository,
	profiles identity.ProfileRepository,
	revisions feed.RevisionStore,
	cfg config.FeedConfig,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		events:    events,
		items:     items,
		profiles:  profiles,
		revisions: revisions,
		cfg:       cfg,
		logger:    logger,
	}
}

// WithMetrics sets the instruments feed reads are recorded on
func (s *FeedService) WithMetrics(m *telemetry.ShelfMetrics) *FeedService {
	s.metrics = m
	return s
}

// UserFeed returns a page of the events authored by profile
func (s *FeedService) UserFeed(ctx context.Context, profile *identity.Profile, q FeedQuery) (*FeedResult, error) {
	if profile == nil {
		return nil, shared.ErrUnauthorized
	}
	size := s.pageSize(q.PageSize, s.cfg.UserPageSize, feed.DefaultUserPageSize)
	return s.load(ctx, feed.UserScope(profile.ID), size, q, func(ctx context.Context) ([]identity.Profile, error) {
		return []identity.Profile{*profile}, nil
	})
}

// StoreFeed returns a page of every event in the store. Managers only.
func (s *FeedService) StoreFeed(ctx context.Context, profile *identity.Profile, q FeedQuery) (*FeedResult, error) {
	if profile == nil {
		return nil, shared.ErrUnauthorized
	}
	if !profile.IsManager() {
		return nil, shared.ErrForbidden
	}
	size := s.pageSize(q.PageSize, s.cfg.StorePageSize, feed.DefaultStorePageSize)
	return s.load(ctx, feed.StoreScope(), size, q, s.profiles.FindAll)
}

// Revision returns the current revision of a scope
func (s *FeedService) Revision(ctx context.Context, scope feed.Scope) (int64, error) {
	return s.revisions.Current(ctx, scope.Key())
}

func (s *FeedService) load(
	ctx context.Context,
	scope feed.Scope,
	pageSize int,
	q FeedQuery,
	listProfiles func(context.Context) ([]identity.Profile, error),
) (result *FeedResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "FeedService", "load",
		attribute.String("feed.scope", scope.Key()),
		attribute.Int("feed.page", q.Page),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	page := max(q.Page, 1)

	// Read the revision before the rows: a write landing in between leaves
	// the response tagged older than its data, which only causes a refetch.
	revision, err := s.revisions.Current(ctx, scope.Key())
	if err != nil {
		return nil, err
	}
	if q.KnownRevision != nil && *q.KnownRevision == revision {
		s.metrics.RecordNotModified(ctx, scopeKind(scope))
		return &FeedResult{Revision: revision, NotModified: true}, nil
	}

	var (
		rows     *shelf.EventPage
		items    []catalog.Item
		profiles []identity.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.events.Query(gctx, scope.Filter(page, pageSize))
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = listProfiles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Enrich(ctx, s.logger).Error("Failed to load feed page",
			zap.String("scope", scope.Key()),
			zap.Int("page", page),
			zap.Error(err))
		return nil, err
	}

	enriched := shelf.NewLookup(items, profiles).EnrichAll(rows.Rows)
	return &FeedResult{
		Page:     feed.NewPage(enriched, rows.TotalCount, page, pageSize),
		Revision: revision,
	}, nil
}

// pageSize resolves the requested size against the configured default and cap
func (s *FeedService) pageSize(requested, configured, fallback int) int {
	size := requested
	if size <= 0 {
		size = configured
	}
	if size <= 0 {
		size = fallback
	}
	if s.cfg.MaxPageSize > 0 && size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	return size
}

func scopeKind(scope feed.Scope) string {
	if scope.IsStore() {
		return "store"
	}
	return "user"
}
