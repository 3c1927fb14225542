package shelf

import (
	"context"
	"fmt"

	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"go.uber.org/zap"
)

// RevisionBumpHandler marks the submitter's feed and the store feed stale
// after an event is recorded. Trend caches key on the store revision, so they
// are invalidated by the same bump.
type RevisionBumpHandler struct {
	revisions feed.RevisionStore
	logger    *zap.Logger
}

// NewRevisionBumpHandler creates a new RevisionBumpHandler
func NewRevisionBumpHandler(revisions feed.RevisionStore, logger *zap.Logger) *RevisionBumpHandler {
	return &RevisionBumpHandler{
		revisions: revisions,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RevisionBumpHandler) EventTypes() []string {
	return []string{shelf.EventTypeShelfEventRecorded}
}

// Handle bumps the revisions of every scope containing the recorded event
func (h *RevisionBumpHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*shelf.ShelfEventRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	keys := []string{
		feed.UserScope(recorded.UserID).Key(),
		feed.StoreScope().Key(),
	}
	if err := h.revisions.Bump(ctx, keys...); err != nil {
		return fmt.Errorf("failed to bump feed revisions: %w", err)
	}

	h.logger.Debug("Feed revisions bumped",
		zap.Int64("event_id", recorded.ShelfEventID),
		zap.Strings("keys", keys))
	return nil
}
