package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shelflog/backend/internal/infrastructure/cache"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, event shelf.NewEvent) (*shelf.ShelfEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shelf.ShelfEvent), args.Error(1)
}

func (m *MockEventRepository) Query(ctx context.Context, filter shelf.EventFilter) (*shelf.EventPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shelf.EventPage), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]identity.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Profile), args.Error(1)
}

type feedFixture struct {
	events    *MockEventRepository
	items     *MockItemRepository
	profiles  *MockProfileRepository
	revisions *cache.InMemoryRevisionStore
	service   *FeedService
	associate *identity.Profile
	manager   *identity.Profile
	item      catalog.Item
}

func newFeedFixture(t *testing.T, cfg config.FeedConfig) *feedFixture {
	t.Helper()
	associate, err := identity.NewProfile(uuid.New(), "Avery", identity.RoleAssociate)
	require.NoError(t, err)
	manager, err := identity.NewProfile(uuid.New(), "Morgan", identity.RoleManager)
	require.NoError(t, err)
	item, err := catalog.NewItem(uuid.New(), "Rye Bread", "B1", nil)
	require.NoError(t, err)

	f := &feedFixture{
		events:    new(MockEventRepository),
		items:     new(MockItemRepository),
		profiles:  new(MockProfileRepository),
		revisions: cache.NewInMemoryRevisionStoreAt(0),
		associate: associate,
		manager:   manager,
		item:      *item,
	}
	f.service = NewFeedService(f.events, f.items, f.profiles, f.revisions, cfg, zap.NewNop())
	return f
}

func defaultFeedConfig() config.FeedConfig {
	return config.FeedConfig{UserPageSize: 10, StorePageSize: 25, MaxPageSize: 100}
}

func eventBy(userID, itemID uuid.UUID, id int64) shelf.ShelfEvent {
	return shelf.ShelfEvent{
		ID:        id,
		UserID:    userID,
		ItemID:    itemID,
		Action:    shelf.ActionEmpty,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, int(id), 0, time.UTC),
	}
}

func TestFeedService_UserFeed(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t, defaultFeedConfig())
	require.NoError(t, f.revisions.Bump(ctx, feed.UserScope(f.associate.ID).Key()))

	wantFilter := feed.UserScope(f.associate.ID).Filter(2, 10)
	f.events.On("Query", mock.Anything, wantFilter).Return(&shelf.EventPage{
		Rows: []shelf.ShelfEvent{
			eventBy(f.associate.ID, f.item.ID, 12),
			eventBy(f.associate.ID, uuid.New(), 11),
		},
		TotalCount: 12,
	}, nil)
	f.items.On("FindAll", mock.Anything).Return([]catalog.Item{f.item}, nil)

	result, err := f.service.UserFeed(ctx, f.associate, FeedQuery{Page: 2})
	require.NoError(t, err)

	assert.False(t, result.NotModified)
	assert.Equal(t, int64(1), result.Revision)
	assert.Equal(t, 2, result.Page.PageNumber)
	assert.Equal(t, 10, result.Page.PageSize)
	assert.Equal(t, int64(12), result.Page.TotalCount)
	assert.Equal(t, 2, result.Page.PageCount())
	assert.False(t, result.Page.HasNext())
	assert.True(t, result.Page.HasPrevious())

	require.Len(t, result.Page.Items, 2)
	assert.Equal(t, "Rye Bread", result.Page.Items[0].ItemName)
	assert.Equal(t, "Avery", result.Page.Items[0].UserName)
	assert.Equal(t, shelf.UnknownItemName, result.Page.Items[1].ItemName)
	assert.Equal(t, shelf.UnknownAisle, result.Page.Items[1].Aisle)

	// the user feed never lists other profiles
	f.profiles.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestFeedService_UserFeed_EmptyHasOnePage(t *testing.T) {
	f := newFeedFixture(t, defaultFeedConfig())
	f.events.On("Query", mock.Anything, mock.Anything).Return(&shelf.EventPage{Rows: []shelf.ShelfEvent{}}, nil)
	f.items.On("FindAll", mock.Anything).Return([]catalog.Item{}, nil)

	result, err := f.service.UserFeed(context.Background(), f.associate, FeedQuery{Page: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page.PageNumber)
	assert.Equal(t, 1, result.Page.PageCount())
	assert.Empty(t, result.Page.Items)
	assert.False(t, result.Page.HasNext())
	assert.False(t, result.Page.HasPrevious())
}

func TestFeedService_StoreFeed(t *testing.T) {
	t.Run("associates are forbidden", func(t *testing.T) {
		f := newFeedFixture(t, defaultFeedConfig())
		_, err := f.service.StoreFeed(context.Background(), f.associate, FeedQuery{Page: 1})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.events.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	})

	t.Run("managers see every author", func(t *testing.T) {
		f := newFeedFixture(t, defaultFeedConfig())
		f.events.On("Query", mock.Anything, feed.StoreScope().Filter(1, 25)).Return(&shelf.EventPage{
			Rows: []shelf.ShelfEvent{
				eventBy(f.associate.ID, f.item.ID, 2),
				eventBy(uuid.New(), f.item.ID, 1),
			},
			TotalCount: 2,
		}, nil)
		f.items.On("FindAll", mock.Anything).Return([]catalog.Item{f.item}, nil)
		f.profiles.On("FindAll", mock.Anything).Return([]identity.Profile{*f.associate, *f.manager}, nil)

		result, err := f.service.StoreFeed(context.Background(), f.manager, FeedQuery{Page: 1})
		require.NoError(t, err)
		require.Len(t, result.Page.Items, 2)
		assert.Equal(t, "Avery", result.Page.Items[0].UserName)
		assert.Equal(t, shelf.UnknownUserName, result.Page.Items[1].UserName)
	})
}

func TestFeedService_NotModified(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t, defaultFeedConfig())
	require.NoError(t, f.revisions.Bump(ctx, feed.UserScope(f.associate.ID).Key()))

	known := int64(1)
	result, err := f.service.UserFeed(ctx, f.associate, FeedQuery{Page: 1, KnownRevision: &known})
	require.NoError(t, err)
	assert.True(t, result.NotModified)
	assert.Equal(t, int64(1), result.Revision)
	f.events.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)

	require.NoError(t, f.revisions.Bump(ctx, feed.UserScope(f.associate.ID).Key()))
	f.events.On("Query", mock.Anything, mock.Anything).Return(&shelf.EventPage{Rows: []shelf.ShelfEvent{}}, nil)
	f.items.On("FindAll", mock.Anything).Return([]catalog.Item{}, nil)

	result, err = f.service.UserFeed(ctx, f.associate, FeedQuery{Page: 1, KnownRevision: &known})
	require.NoError(t, err)
	assert.False(t, result.NotModified)
	assert.Equal(t, int64(2), result.Revision)
}

func TestFeedService_NotModifiedSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t, defaultFeedConfig())
	f.revisions = cache.NewInMemoryRevisionStore()
	f.service = NewFeedService(f.events, f.items, f.profiles, f.revisions, defaultFeedConfig(), zap.NewNop())
	scopeKey := feed.UserScope(f.associate.ID).Key()

	f.events.On("Query", mock.Anything, mock.Anything).Return(&shelf.EventPage{
		Rows:       []shelf.ShelfEvent{eventBy(f.associate.ID, f.item.ID, 2), eventBy(f.associate.ID, f.item.ID, 1)},
		TotalCount: 2,
	}, nil).Once()
	f.items.On("FindAll", mock.Anything).Return([]catalog.Item{f.item}, nil)

	require.NoError(t, f.revisions.Bump(ctx, scopeKey))
	require.NoError(t, f.revisions.Bump(ctx, scopeKey))
	first, err := f.service.UserFeed(ctx, f.associate, FeedQuery{Page: 1})
	require.NoError(t, err)
	held := first.Revision

	time.Sleep(time.Millisecond)

	// the process restarts with an empty store and two more events land
	restarted := cache.NewInMemoryRevisionStore()
	require.NoError(t, restarted.Bump(ctx, scopeKey))
	require.NoError(t, restarted.Bump(ctx, scopeKey))
	service := NewFeedService(f.events, f.items, f.profiles, restarted, defaultFeedConfig(), zap.NewNop())
	f.events.On("Query", mock.Anything, mock.Anything).Return(&shelf.EventPage{
		Rows: []shelf.ShelfEvent{
			eventBy(f.associate.ID, f.item.ID, 4), eventBy(f.associate.ID, f.item.ID, 3),
			eventBy(f.associate.ID, f.item.ID, 2), eventBy(f.associate.ID, f.item.ID, 1),
		},
		TotalCount: 4,
	}, nil).Once()

	result, err := service.UserFeed(ctx, f.associate, FeedQuery{Page: 1, KnownRevision: &held})
	require.NoError(t, err)
	assert.False(t, result.NotModified)
	assert.Greater(t, result.Revision, held)
	assert.Len(t, result.Page.Items, 4)
}

func TestFeedService_ClampsPageToOne(t *testing.T) {
	f := newFeedFixture(t, defaultFeedConfig())
	f.events.On("Query", mock.Anything, feed.UserScope(f.associate.ID).Filter(1, 10)).
		Return(&shelf.EventPage{Rows: []shelf.ShelfEvent{}}, nil)
	f.items.On("FindAll", mock.Anything).Return([]catalog.Item{}, nil)

	result, err := f.service.UserFeed(context.Background(), f.associate, FeedQuery{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page.PageNumber)
	f.events.AssertExpectations(t)
}

func TestFeedService_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(t, defaultFeedConfig())
	require.NoError(t, f.revisions.Bump(ctx, feed.StoreScope().Key()))

	userRev, err := f.service.Revision(ctx, feed.UserScope(f.associate.ID))
	require.NoError(t, err)
	storeRev, err := f.service.Revision(ctx, feed.StoreScope())
	require.NoError(t, err)

	assert.Equal(t, int64(0), userRev)
	assert.Equal(t, int64(1), storeRev)
}

func TestFeedService_PageSize(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.FeedConfig
		requested int
		want      int
	}{
		{"configured default", defaultFeedConfig(), 0, 10},
		{"explicit size", defaultFeedConfig(), 5, 5},
		{"capped at max", config.FeedConfig{UserPageSize: 10, MaxPageSize: 20}, 500, 20},
		{"falls back when unconfigured", config.FeedConfig{}, 0, feed.DefaultUserPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeedFixture(t, tt.cfg)
			f.events.On("Query", mock.Anything, feed.UserScope(f.associate.ID).Filter(1, tt.want)).
				Return(&shelf.EventPage{Rows: []shelf.ShelfEvent{}}, nil)
			f.items.On("FindAll", mock.Anything).Return([]catalog.Item{}, nil)

			result, err := f.service.UserFeed(context.Background(), f.associate, FeedQuery{Page: 1, PageSize: tt.requested})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Page.PageSize)
		})
	}
}

func TestFeedService_Errors(t *testing.T) {
	t.Run("query failure surfaces", func(t *testing.T) {
		f := newFeedFixture(t, defaultFeedConfig())
		f.events.On("Query", mock.Anything, mock.Anything).
			Return(nil, shared.NewPersistenceError("query shelf events", errors.New("down")))
		f.items.On("FindAll", mock.Anything).Return([]catalog.Item{}, nil)

		_, err := f.service.UserFeed(context.Background(), f.associate, FeedQuery{Page: 1})
		assert.ErrorIs(t, err, shared.ErrPersistence)
	})

	t.Run("missing profile is unauthorized", func(t *testing.T) {
		f := newFeedFixture(t, defaultFeedConfig())
		_, err := f.service.UserFeed(context.Background(), nil, FeedQuery{Page: 1})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
		_, err = f.service.StoreFeed(context.Background(), nil, FeedQuery{Page: 1})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
