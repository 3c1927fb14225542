package feed

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/shelf"
)

// Default page sizes of the two feeds
const (
	DefaultUserPageSize  = 10
	DefaultStorePageSize = 25
)

// Scope identifies which events a feed covers
type Scope struct {
	userID uuid.UUID
	store  bool
}

// UserScope covers the events authored by one profile
func UserScope(profileID uuid.UUID) Scope {
	return Scope{userID: profileID}
}

// StoreScope covers every event in the store
func StoreScope() Scope {
	return Scope{store: true}
}

// IsStore reports whether the scope is store-wide
func (s Scope) IsStore() bool {
	return s.store
}

// UserID returns the profile of a user scope, or uuid.Nil for the store scope
func (s Scope) UserID() uuid.UUID {
	return s.userID
}

// Key is the revision key of the scope
func (s Scope) Key() string {
	if s.store {
		return "events:store"
	}
	return "events:user:" + s.userID.String()
}

// String implements fmt.Stringer
func (s Scope) String() string {
	return s.Key()
}

// Filter returns the event query for one page of this scope
func (s Scope) Filter(pageNumber, pageSize int) shelf.EventFilter {
	f := shelf.EventFilter{}.Window(pageSize, Offset(pageNumber, pageSize))
	if !s.store {
		f = f.ForUser(s.userID)
	}
	return f
}

// RevisionStore keeps a monotonically increasing revision per scope key.
// A scope's revision is bumped after every write that changes its events.
type RevisionStore interface {
	// Current returns the revision of key, 0 when never bumped
	Current(ctx context.Context, key string) (int64, error)

	// Bump increments every key by one
	Bump(ctx context.Context, keys ...string) error
}
