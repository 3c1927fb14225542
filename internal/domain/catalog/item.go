package catalog

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shared"
)

// Item is a catalog item that shelf events are recorded against.
// Items are reference data: the core never creates or mutates them.
type Item struct {
	shared.BaseEntity
	Name     string
	Aisle    string
	Capacity *int
}

// NewItem builds an Item from stored values, enforcing the catalog invariants
func NewItem(id uuid.UUID, name, aisle string, capacity *int) (*Item, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item name cannot be empty")
	}
	if capacity != nil && *capacity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item capacity must be positive when set")
	}

	item := &Item{
		BaseEntity: shared.NewBaseEntityWithID(id),
		Name:       name,
		Aisle:      aisle,
		Capacity:   capacity,
	}
	return item, nil
}

// HasCapacity reports whether the item declares a shelf capacity
func (i *Item) HasCapacity() bool {
	return i.Capacity != nil
}

// SortByName orders items by name for selection lists, case-insensitively.
// Equal names keep their relative order.
func SortByName(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}
