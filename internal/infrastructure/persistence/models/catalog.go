package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/shared"
)

// ItemModel maps the items table
type ItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Aisle     string    `gorm:"type:varchar(50);not null;default:''"`
	Capacity  *int
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the row to a catalog item
func (m *ItemModel) ToDomain() (*catalog.Item, error) {
	item, err := catalog.NewItem(m.ID, m.Name, m.Aisle, m.Capacity)
	if err != nil {
		return nil, shared.NewSchemaError("item", err.Error())
	}
	item.CreatedAt = m.CreatedAt
	return item, nil
}

// ItemModelFromDomain converts a catalog item to its row
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	return &ItemModel{
		ID:        i.ID,
		Name:      i.Name,
		Aisle:     i.Aisle,
		Capacity:  i.Capacity,
		CreatedAt: i.CreatedAt,
	}
}
