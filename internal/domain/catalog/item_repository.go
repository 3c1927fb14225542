package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the read-only interface for catalog items
type ItemRepository interface {
	// FindAll returns every item; order is unspecified
	FindAll(ctx context.Context) ([]Item, error)

	// FindByID finds an item by its ID, returning shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
}
