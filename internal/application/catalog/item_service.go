package catalog

import (
	"context"

	"github.com/shelflog/backend/internal/domain/catalog"
)

// ItemService serves the item catalog used by the event form
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// List returns every item sorted by name
func (s *ItemService) List(ctx context.Context) ([]catalog.Item, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog.SortByName(items)
	return items, nil
}
