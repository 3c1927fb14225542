package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
)

// ShelfEventModel maps the shelf_events table. Rows are only ever inserted.
type ShelfEventModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(20);not null"`
	Count     *int
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ShelfEventModel) TableName() string {
	return "shelf_events"
}

// ToDomain converts the row to a shelf event
func (m *ShelfEventModel) ToDomain() (*shelf.ShelfEvent, error) {
	action := shelf.Action(m.Action)
	if !action.IsValid() {
		return nil, shared.NewSchemaError("shelf_event", fmt.Sprintf("id %d has unknown action %q", m.ID, m.Action))
	}
	if m.Count != nil && *m.Count < 0 {
		return nil, shared.NewSchemaError("shelf_event", fmt.Sprintf("id %d has negative count", m.ID))
	}
	if m.UserID == uuid.Nil || m.ItemID == uuid.Nil {
		return nil, shared.NewSchemaError("shelf_event", fmt.Sprintf("id %d is missing a reference", m.ID))
	}
	return &shelf.ShelfEvent{
		ID:        m.ID,
		UserID:    m.UserID,
		ItemID:    m.ItemID,
		Action:    action,
		Count:     m.Count,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ShelfEventModelFromNew builds the row for an event about to be appended
func ShelfEventModelFromNew(e shelf.NewEvent) *ShelfEventModel {
	return &ShelfEventModel{
		UserID: e.UserID,
		ItemID: e.ItemID,
		Action: string(e.Action),
		Count:  e.Count,
	}
}
