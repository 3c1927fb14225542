package dashboard

import (
	"context"

	appfeed "github.com/shelflog/backend/internal/application/feed"
	appreport "github.com/shelflog/backend/internal/application/report"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FeedReader reads the paginated feeds
type FeedReader interface {
	UserFeed(ctx context.Context, profile *identity.Profile, q appfeed.FeedQuery) (*appfeed.FeedResult, error)
	StoreFeed(ctx context.Context, profile *identity.Profile, q appfeed.FeedQuery) (*appfeed.FeedResult, error)
}

// TrendReader reads the store-wide trend set
type TrendReader interface {
	Trends(ctx context.Context, profile *identity.Profile) (*appreport.TrendResult, error)
}

// LoadInput selects the page of each feed
type LoadInput struct {
	UserPage  int
	StorePage int
}

// Dashboard is the role-shaped composite view. StoreFeed and Trends are only
// set for managers.
type Dashboard struct {
	Profile   *identity.Profile
	UserFeed  *appfeed.FeedResult
	StoreFeed *appfeed.FeedResult
	Trends    *appreport.TrendResult
}

// DashboardService assembles the dashboard
type DashboardService struct {
	feeds  FeedReader
	trends TrendReader
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(feeds FeedReader, trends TrendReader, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		feeds:  feeds,
		trends: trends,
		logger: logger,
	}
}

// Load fetches the feeds and, for managers, the trends concurrently. Each
// part is computed from its own fetch; the first failure cancels the rest.
func (s *DashboardService) Load(ctx context.Context, profile *identity.Profile, input LoadInput) (result *Dashboard, err error) {
	if profile == nil {
		return nil, shared.ErrUnauthorized
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "DashboardService", "Load",
		attribute.String("profile.role", string(profile.Role)))
	defer func() { telemetry.EndSpan(span, err) }()

	d := &Dashboard{Profile: profile}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		d.UserFeed, err = s.feeds.UserFeed(gctx, profile, appfeed.FeedQuery{Page: input.UserPage})
		return err
	})

	if profile.IsManager() {
		g.Go(func() error {
			var err error
			d.StoreFeed, err = s.feeds.StoreFeed(gctx, profile, appfeed.FeedQuery{Page: input.StorePage})
			return err
		})
		g.Go(func() error {
			var err error
			d.Trends, err = s.trends.Trends(gctx, profile)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Enrich(ctx, s.logger).Error("Failed to load dashboard", zap.Error(err))
		return nil, err
	}
	return d, nil
}
