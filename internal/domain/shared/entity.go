package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for reference entities (items, profiles)
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
}

// BaseEntity provides common fields for reference entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	return NewBaseEntityWithID(uuid.New())
}

// NewBaseEntityWithID creates a base entity for an identity assigned elsewhere,
// e.g. a profile whose id is the authenticated principal's id.
func NewBaseEntityWithID(id uuid.UUID) BaseEntity {
	return BaseEntity{
		ID:        id,
		CreatedAt: time.Now(),
	}
}
