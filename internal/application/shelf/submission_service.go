package shelf

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/catalog"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/domain/shelf"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultIdempotencyTTL is how long a submission key stays claimed
const DefaultIdempotencyTTL = 24 * time.Hour

// ErrDuplicateSubmission is returned when an idempotency key was already used
var ErrDuplicateSubmission = shared.NewDomainError(shared.CodeAlreadyExists, "This submission was already recorded")

// SubmissionService validates and records shelf events
type SubmissionService struct {
	items          catalog.ItemRepository
	events         shelf.EventRepository
	publisher      shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	metrics        *telemetry.ShelfMetrics
	logger         *zap.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	items catalog.ItemRepository,
	events shelf.EventRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		items:          items,
		events:         events,
		publisher:      publisher,
		idempotencyTTL: DefaultIdempotencyTTL,
		logger:         logger,
	}
}

// WithIdempotency enables deduplication of keyed submissions
func (s *SubmissionService) WithIdempotency(store shared.IdempotencyStore, ttl time.Duration) *SubmissionService {
	s.idempotency = store
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
	return s
}

// WithMetrics sets the instruments submissions are recorded on
func (s *SubmissionService) WithMetrics(m *telemetry.ShelfMetrics) *SubmissionService {
	s.metrics = m
	return s
}

// Submit validates one event form and appends exactly one event authored by
// profile. The ShelfEventRecorded event is published before Submit returns so
// feed revisions move ahead of any later read.
func (s *SubmissionService) Submit(ctx context.Context, profile *identity.Profile, input SubmitInput) (event *shelf.ShelfEvent, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SubmissionService", "Submit",
		attribute.String("shelf.action", input.Action),
		attribute.String("shelf.item_id", input.ItemID.String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	log := logger.Enrich(ctx, s.logger)

	if profile == nil {
		return nil, shared.ErrUnauthorized
	}

	newEvent, err := s.validate(ctx, profile.ID, input)
	if err != nil {
		s.reject(ctx, err)
		log.Info("Shelf event rejected", zap.Error(err))
		return nil, err
	}

	claimKey, err := s.claim(ctx, profile.ID, input.IdempotencyKey)
	if err != nil {
		s.reject(ctx, err)
		return nil, err
	}

	event, err = s.events.Insert(ctx, *newEvent)
	if err != nil {
		s.release(ctx, claimKey)
		s.reject(ctx, err)
		log.Error("Failed to record shelf event",
			zap.String("item_id", input.ItemID.String()),
			zap.Error(err))
		return nil, err
	}

	s.metrics.RecordSubmitted(ctx, string(event.Action))
	log.Info("Shelf event recorded",
		zap.Int64("event_id", event.ID),
		zap.String("item_id", event.ItemID.String()),
		zap.String("action", string(event.Action)),
		zap.Bool("has_count", event.HasCount()))

	// The event is committed; a failed handler must not turn it into an error
	if err := s.publisher.Publish(ctx, shelf.NewShelfEventRecordedEvent(event)); err != nil {
		log.Error("Failed to publish shelf event notification",
			zap.Int64("event_id", event.ID),
			zap.Error(err))
	}

	return event, nil
}

// validate applies the form rules in order: selection, action, item, count
func (s *SubmissionService) validate(ctx context.Context, profileID uuid.UUID, input SubmitInput) (*shelf.NewEvent, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if input.ItemID == uuid.Nil || action == "" {
		return nil, shared.NewValidationError(shared.CodeMissingSelection, "Please select an item and action.")
	}
	if !shelf.Action(action).IsValid() {
		return nil, shared.NewValidationError(shared.CodeInvalidAction, "Action must be empty, low_stock or restocked")
	}

	if _, err := s.items.FindByID(ctx, input.ItemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError(shared.CodeItemNotFound, "Selected item does not exist")
		}
		return nil, err
	}

	newEvent := shelf.NewEvent{
		UserID: profileID,
		ItemID: input.ItemID,
		Action: shelf.Action(action),
		Count:  shelf.ParseCount(input.RawCount),
	}
	if err := newEvent.Validate(); err != nil {
		return nil, err
	}
	return &newEvent, nil
}

// claim reserves the idempotency key. A store outage never blocks submission.
func (s *SubmissionService) claim(ctx context.Context, profileID uuid.UUID, key string) (string, error) {
	key = strings.TrimSpace(key)
	if s.idempotency == nil || key == "" {
		return "", nil
	}

	scoped := "submit:" + profileID.String() + ":" + key
	claimed, err := s.idempotency.Claim(ctx, scoped, s.idempotencyTTL)
	if err != nil {
		logger.Enrich(ctx, s.logger).Warn("Idempotency store unavailable, submitting without deduplication",
			zap.Error(err))
		return "", nil
	}
	if !claimed {
		return "", ErrDuplicateSubmission
	}
	return scoped, nil
}

func (s *SubmissionService) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to release idempotency key", zap.Error(err))
	}
}

func (s *SubmissionService) reject(ctx context.Context, err error) {
	var de *shared.DomainError
	code := shared.CodePersistence
	if errors.As(err, &de) {
		code = de.Code
	}
	s.metrics.RecordRejected(ctx, code)
}
