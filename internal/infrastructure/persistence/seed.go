package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultItems is the starter catalog. The same rows are inserted by the
// seed migration, so ids must stay in sync with migrations/000002_seed_items.
func DefaultItems() []models.ItemModel {
	capacity := func(v int) *int { return &v }
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.ItemModel{
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c01"), Name: "Whole Milk 1L", Aisle: "A1", Capacity: capacity(48), CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c02"), Name: "Eggs (12 pack)", Aisle: "A1", Capacity: capacity(30), CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c03"), Name: "Sourdough Bread", Aisle: "B2", Capacity: capacity(20), CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c04"), Name: "Bananas", Aisle: "C1", CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c05"), Name: "Paper Towels", Aisle: "D4", Capacity: capacity(36), CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c06"), Name: "Ground Coffee", Aisle: "B5", Capacity: capacity(40), CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c07"), Name: "Orange Juice", Aisle: "A2", Capacity: capacity(24), CreatedAt: created},
		{ID: uuid.MustParse("0b6f6a1e-6c1d-4a52-9a0e-1c2f3a4b5c08"), Name: "Dish Soap", Aisle: "D2", CreatedAt: created},
	}
}

// SeedItems inserts items whose ids are not present yet
func SeedItems(ctx context.Context, db *gorm.DB, items []models.ItemModel) error {
	if len(items) == 0 {
		return nil
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&items).Error
	if err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}
	return nil
}
