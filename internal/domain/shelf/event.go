package shelf

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shared"
)

// ShelfEvent is one append-only observation of an item's stock state.
// ID is the insertion id and breaks ties between equal CreatedAt values.
type ShelfEvent struct {
	ID        int64
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Action    Action
	Count     *int
	CreatedAt time.Time
}

// HasCount reports whether a count was recorded
func (e *ShelfEvent) HasCount() bool {
	return e.Count != nil
}

// NewEvent is the payload handed to the store when appending an event
type NewEvent struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	Action Action
	Count  *int
}

// Validate enforces the data-model invariants of an event before it is stored
func (n NewEvent) Validate() error {
	if n.UserID == uuid.Nil || n.ItemID == uuid.Nil {
		return shared.NewValidationError(shared.CodeMissingSelection, "Please select an item and action.")
	}
	if !n.Action.IsValid() {
		return shared.NewValidationError(shared.CodeInvalidAction, "Action must be empty, low_stock or restocked")
	}
	if n.Count != nil && *n.Count < 0 {
		return shared.NewValidationError(shared.CodeInvalidCount, "Count cannot be negative")
	}
	return nil
}

// EventFilter narrows an event query. Nil fields mean "no restriction".
type EventFilter struct {
	UserID *uuid.UUID
	Limit  *int
	Offset *int
}

// ForUser restricts the filter to one author
func (f EventFilter) ForUser(id uuid.UUID) EventFilter {
	f.UserID = &id
	return f
}

// Window sets limit and offset
func (f EventFilter) Window(limit, offset int) EventFilter {
	f.Limit = &limit
	f.Offset = &offset
	return f
}

// EventPage is one window of an event query together with the unwindowed total
type EventPage struct {
	Rows       []ShelfEvent
	TotalCount int64
}

// EventRepository defines the append-only event store
type EventRepository interface {
	// Insert appends one event and returns it with its assigned id and timestamp.
	// Store failures are reported as shared.ErrPersistence.
	Insert(ctx context.Context, event NewEvent) (*ShelfEvent, error)

	// Query returns events matching the filter ordered by created_at desc, id desc,
	// plus the total count of matching events ignoring limit and offset.
	Query(ctx context.Context, filter EventFilter) (*EventPage, error)
}
