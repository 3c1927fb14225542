package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindAll returns every well-formed item ordered by name. Malformed rows are
// logged and left out so one bad row cannot blank the catalog.
func (r *GormItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	var rows []models.ItemModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewPersistenceError("list items", err)
	}

	items := make([]catalog.Item, 0, len(rows))
	for i := range rows {
		item, err := rows[i].ToDomain()
		if err != nil {
			logger.FromContext(ctx).Warn("Skipping malformed item row",
				zap.String("item_id", rows[i].ID.String()), zap.Error(err))
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var row models.ItemModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError("find item", err)
	}
	return row.ToDomain()
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
