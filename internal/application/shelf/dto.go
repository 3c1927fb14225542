package shelf

import (
	"github.com/google/uuid"
)

// SubmitInput contains the fields of the event form
type SubmitInput struct {
	ItemID   uuid.UUID
	Action   string
	RawCount string // free-form; parsed leniently
	// IdempotencyKey deduplicates retried submissions of the same form (optional)
	IdempotencyKey string
}
