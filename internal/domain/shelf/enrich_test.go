package shelf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	milk := catalog.Item{BaseEntity: shared.BaseEntity{ID: uuid.New()}, Name: "Milk", Aisle: "A3"}
	dana := identity.Profile{BaseEntity: shared.BaseEntity{ID: uuid.New()}, Name: "Dana", Role: identity.RoleManager}
	now := time.Now()

	events := []ShelfEvent{
		{ID: 2, UserID: dana.ID, ItemID: milk.ID, Action: ActionLowStock, Count: ptr(2), CreatedAt: now},
		{ID: 1, UserID: uuid.New(), ItemID: uuid.New(), Action: ActionEmpty, CreatedAt: now.Add(-time.Minute)},
	}

	got := Enrich(events, []catalog.Item{milk}, []identity.Profile{dana})
	require.Len(t, got, 2)

	t.Run("resolved references", func(t *testing.T) {
		e := got[0]
		assert.Equal(t, "Milk", e.ItemName)
		assert.Equal(t, "A3", e.Aisle)
		assert.Equal(t, "Dana", e.UserName)
		assert.True(t, e.ItemResolved)
		assert.True(t, e.UserResolved)
		assert.Equal(t, "Low Stock", e.ActionLabel())
		assert.Equal(t, int64(2), e.ID)
	})

	t.Run("unresolved references get placeholders", func(t *testing.T) {
		e := got[1]
		assert.Equal(t, UnknownItemName, e.ItemName)
		assert.Equal(t, UnknownAisle, e.Aisle)
		assert.Equal(t, UnknownUserName, e.UserName)
		assert.False(t, e.ItemResolved)
		assert.False(t, e.UserResolved)
		assert.False(t, e.HasCount())
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Enrich(nil, nil, nil))
	})
}
