package shelf

import (
	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/identity"
)

// Placeholders used when an event references an unknown item or profile
const (
	UnknownItemName = "Unknown Item"
	UnknownAisle    = "N/A"
	UnknownUserName = "Unknown"
)

// EnrichedEvent is an event joined with its item and author for display and aggregation
type EnrichedEvent struct {
	ShelfEvent
	ItemName     string
	Aisle        string
	UserName     string
	ItemResolved bool
	UserResolved bool
}

// ActionLabel returns the display label of the event's action
func (e EnrichedEvent) ActionLabel() string {
	return e.Action.Label()
}

// Lookup resolves item and profile references in memory
type Lookup struct {
	items    map[uuid.UUID]catalog.Item
	profiles map[uuid.UUID]identity.Profile
}

// NewLookup indexes the reference collections supplied by the store
func NewLookup(items []catalog.Item, profiles []identity.Profile) *Lookup {
	l := &Lookup{
		items:    make(map[uuid.UUID]catalog.Item, len(items)),
		profiles: make(map[uuid.UUID]identity.Profile, len(profiles)),
	}
	for _, item := range items {
		l.items[item.ID] = item
	}
	for _, p := range profiles {
		l.profiles[p.ID] = p
	}
	return l
}

// Enrich projects one event. It never fails: unresolved references get placeholders.
func (l *Lookup) Enrich(event ShelfEvent) EnrichedEvent {
	out := EnrichedEvent{
		ShelfEvent: event,
		ItemName:   UnknownItemName,
		Aisle:      UnknownAisle,
		UserName:   UnknownUserName,
	}
	if item, ok := l.items[event.ItemID]; ok {
		out.ItemName = item.Name
		out.Aisle = item.Aisle
		out.ItemResolved = true
	}
	if p, ok := l.profiles[event.UserID]; ok {
		out.UserName = p.Name
		out.UserResolved = true
	}
	return out
}

// EnrichAll projects events in order
func (l *Lookup) EnrichAll(events []ShelfEvent) []EnrichedEvent {
	out := make([]EnrichedEvent, len(events))
	for i, e := range events {
		out[i] = l.Enrich(e)
	}
	return out
}

// Enrich joins events with items and profiles in one call
func Enrich(events []ShelfEvent, items []catalog.Item, profiles []identity.Profile) []EnrichedEvent {
	return NewLookup(items, profiles).EnrichAll(events)
}
