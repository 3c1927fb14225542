package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RevisionSource reports the current revision of a key
type RevisionSource interface {
	Current(ctx context.Context, key string) (int64, error)
}

// RevisionTriggerConfig holds configuration for the revision trigger
type RevisionTriggerConfig struct {
	// Key is the revision key watched for changes
	Key string
	// Kind is the job kind scheduled when Key moves
	Kind string
	// CheckInterval is how often the revision is polled
	CheckInterval time.Duration
}

// RevisionTrigger schedules a job whenever a watched revision moves
type RevisionTrigger struct {
	config    RevisionTriggerConfig
	scheduler *Scheduler
	revisions RevisionSource
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastSeen  int64
	seen      bool
}

// NewRevisionTrigger creates a new revision trigger
func NewRevisionTrigger(
	config RevisionTriggerConfig,
	scheduler *Scheduler,
	revisions RevisionSource,
	logger *zap.Logger,
) *RevisionTrigger {
	return &RevisionTrigger{
		config:    config,
		scheduler: scheduler,
		revisions: revisions,
		logger:    logger,
	}
}

// Start checks once immediately, then polls every CheckInterval
func (t *RevisionTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return nil
	}
	if t.config.CheckInterval <= 0 {
		return ErrInvalidConfig
	}
	t.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Revision trigger started",
		zap.String("key", t.config.Key),
		zap.String("kind", t.config.Kind),
		zap.Duration("check_interval", t.config.CheckInterval),
	)
	return nil
}

// Stop stops the trigger
func (t *RevisionTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.cancel()
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Revision trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *RevisionTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	t.checkAndTrigger(ctx)

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger schedules a job if the revision moved since the last successful submission
func (t *RevisionTrigger) checkAndTrigger(ctx context.Context) {
	revision, err := t.revisions.Current(ctx, t.config.Key)
	if err != nil {
		t.logger.Warn("Failed to read revision", zap.String("key", t.config.Key), zap.Error(err))
		return
	}

	t.mu.Lock()
	unchanged := t.seen && revision == t.lastSeen
	t.mu.Unlock()
	if unchanged {
		return
	}

	if err := t.scheduler.Schedule(t.config.Kind); err != nil {
		t.logger.Warn("Failed to schedule job",
			zap.String("kind", t.config.Kind),
			zap.Int64("revision", revision),
			zap.Error(err))
		return
	}

	t.mu.Lock()
	t.lastSeen = revision
	t.seen = true
	t.mu.Unlock()
}
