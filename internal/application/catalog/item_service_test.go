package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func TestItemService_List(t *testing.T) {
	t.Run("sorts by name", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindAll", mock.Anything).Return([]catalog.Item{
			{Name: "oat milk"}, {Name: "Apples"}, {Name: "Bread"},
		}, nil)

		items, err := NewItemService(repo).List(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Apples", items[0].Name)
		assert.Equal(t, "Bread", items[1].Name)
		assert.Equal(t, "oat milk", items[2].Name)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindAll", mock.Anything).Return(nil, shared.NewPersistenceError("list items", errors.New("down")))

		_, err := NewItemService(repo).List(context.Background())
		assert.ErrorIs(t, err, shared.ErrPersistence)
	})
}
