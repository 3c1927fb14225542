package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestItemModel_ToDomain(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("valid row", func(t *testing.T) {
		m := &ItemModel{ID: uuid.New(), Name: "Milk", Aisle: "A1", Capacity: intPtr(24), CreatedAt: created}
		item, err := m.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, "Milk", item.Name)
		assert.Equal(t, created, item.CreatedAt)
		assert.Equal(t, 24, *item.Capacity)
	})

	t.Run("non-positive capacity is a schema error", func(t *testing.T) {
		m := &ItemModel{ID: uuid.New(), Name: "Milk", Capacity: intPtr(0)}
		_, err := m.ToDomain()
		assert.ErrorIs(t, err, shared.ErrSchema)
	})

	t.Run("empty name is a schema error", func(t *testing.T) {
		_, err := (&ItemModel{ID: uuid.New()}).ToDomain()
		assert.ErrorIs(t, err, shared.ErrSchema)
	})
}

func TestProfileModel_ToDomain(t *testing.T) {
	id := uuid.New()

	p, err := (&ProfileModel{ID: id, Name: "Ana", Role: "manager"}).ToDomain()
	require.NoError(t, err)
	assert.Equal(t, identity.RoleManager, p.Role)
	assert.Equal(t, id, p.ID)

	for _, role := range []string{"", "owner"} {
		_, err := (&ProfileModel{ID: id, Name: "Ana", Role: role}).ToDomain()
		assert.ErrorIs(t, err, shared.ErrSchema, "role %q", role)
	}
}

func TestShelfEventModel_ToDomain(t *testing.T) {
	base := ShelfEventModel{ID: 7, UserID: uuid.New(), ItemID: uuid.New(), Action: "low_stock", Count: intPtr(3)}

	ev, err := base.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, shelf.ActionLowStock, ev.Action)
	assert.Equal(t, int64(7), ev.ID)

	tests := []struct {
		name   string
		mutate func(m *ShelfEventModel)
	}{
		{"unknown action", func(m *ShelfEventModel) { m.Action = "sold_out" }},
		{"negative count", func(m *ShelfEventModel) { m.Count = intPtr(-1) }},
		{"missing item", func(m *ShelfEventModel) { m.ItemID = uuid.Nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			_, err := m.ToDomain()
			assert.ErrorIs(t, err, shared.ErrSchema)
		})
	}
}
