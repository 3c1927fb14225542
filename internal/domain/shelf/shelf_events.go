package shelf

import (
	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShelfEvent = "ShelfEvent"

// Event type constants
const (
	EventTypeShelfEventRecorded = "ShelfEventRecorded"
)

// ShelfEventRecordedEvent is published after a shelf event has been appended
type ShelfEventRecordedEvent struct {
	shared.BaseDomainEvent
	ShelfEventID int64     `json:"shelf_event_id"`
	UserID       uuid.UUID `json:"user_id"`
	ItemID       uuid.UUID `json:"item_id"`
	Action       Action    `json:"action"`
	Count        *int      `json:"count,omitempty"`
}

// NewShelfEventRecordedEvent creates a new ShelfEventRecordedEvent
func NewShelfEventRecordedEvent(e *ShelfEvent) *ShelfEventRecordedEvent {
	return &ShelfEventRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShelfEventRecorded, AggregateTypeShelfEvent, e.UserID),
		ShelfEventID:    e.ID,
		UserID:          e.UserID,
		ItemID:          e.ItemID,
		Action:          e.Action,
		Count:           e.Count,
	}
}
