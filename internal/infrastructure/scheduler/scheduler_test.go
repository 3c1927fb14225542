package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() SchedulerConfig {
	return SchedulerConfig{
		MaxConcurrentJobs: 1,
		QueueSize:         4,
		JobTimeout:        time.Second,
		RetryAttempts:     2,
		RetryDelay:        10 * time.Millisecond,
	}
}

func startScheduler(t *testing.T, cfg SchedulerConfig, exec JobExecutor) *Scheduler {
	t.Helper()
	s, err := NewScheduler(cfg, exec, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		_ = s.Stop(context.Background())
	})
	return s
}

func TestSchedulerConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultSchedulerConfig().Validate())

	cfg := testConfig()
	cfg.MaxConcurrentJobs = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = testConfig()
	cfg.JobTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = testConfig()
	cfg.RetryAttempts = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	_, err := NewScheduler(SchedulerConfig{}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestJob_Lifecycle(t *testing.T) {
	job := NewJob("warm", 1)
	assert.Equal(t, JobStatusPending, job.Status)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Fail("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.True(t, job.ShouldRetry())

	job.prepareRetry()
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Empty(t, job.Error)

	job.Fail("again")
	assert.False(t, job.ShouldRetry())

	job.Complete()
	assert.Equal(t, JobStatusSuccess, job.Status)
}

func TestScheduler_ExecutesJobs(t *testing.T) {
	var mu sync.Mutex
	var kinds []string
	s := startScheduler(t, testConfig(), JobExecutorFunc(func(_ context.Context, job *Job) error {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, job.Kind)
		return nil
	}))

	require.NoError(t, s.Schedule("a"))
	require.NoError(t, s.Schedule("b"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(kinds) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_RetriesFailedJobs(t *testing.T) {
	var attempts atomic.Int32
	s := startScheduler(t, testConfig(), JobExecutorFunc(func(_ context.Context, _ *Job) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	}))

	require.NoError(t, s.Schedule("warm"))

	assert.Eventually(t, func() bool {
		return attempts.Load() == 3
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_GivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int32
	s := startScheduler(t, testConfig(), JobExecutorFunc(func(_ context.Context, _ *Job) error {
		attempts.Add(1)
		return errors.New("permanent")
	}))

	require.NoError(t, s.Schedule("warm"))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestScheduler_SubmitErrors(t *testing.T) {
	t.Run("not running", func(t *testing.T) {
		s, err := NewScheduler(testConfig(), JobExecutorFunc(func(context.Context, *Job) error { return nil }), zap.NewNop())
		require.NoError(t, err)
		assert.ErrorIs(t, s.Schedule("warm"), ErrSchedulerNotRunning)
		assert.False(t, s.IsRunning())
	})

	t.Run("queue full", func(t *testing.T) {
		release := make(chan struct{})
		cfg := testConfig()
		cfg.QueueSize = 1
		s := startScheduler(t, cfg, JobExecutorFunc(func(ctx context.Context, _ *Job) error {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return nil
		}))
		defer close(release)

		// the first job occupies the worker, the second fills the queue
		require.NoError(t, s.Schedule("a"))
		assert.Eventually(t, func() bool { return s.Schedule("b") == nil }, time.Second, time.Millisecond)
		assert.ErrorIs(t, s.Schedule("c"), ErrJobQueueFull)
	})

	t.Run("stopped", func(t *testing.T) {
		s := startScheduler(t, testConfig(), JobExecutorFunc(func(context.Context, *Job) error { return nil }))
		require.NoError(t, s.Stop(context.Background()))
		assert.ErrorIs(t, s.Schedule("warm"), ErrSchedulerNotRunning)
		assert.NoError(t, s.Stop(context.Background()))
	})
}

func TestScheduler_JobTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.JobTimeout = 20 * time.Millisecond
	cfg.RetryAttempts = 0

	done := make(chan error, 1)
	s := startScheduler(t, cfg, JobExecutorFunc(func(ctx context.Context, _ *Job) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	}))
	require.NoError(t, s.Schedule("slow"))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("job was not cancelled")
	}
}
