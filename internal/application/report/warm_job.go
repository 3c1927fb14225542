package report

import (
	"context"

	"github.com/shelflog/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// JobKindTrendWarm names the background job that precomputes trends
const JobKindTrendWarm = "trend_warm"

// TrendWarmExecutor runs trend warm jobs
type TrendWarmExecutor struct {
	trends *TrendService
	logger *zap.Logger
}

// NewTrendWarmExecutor creates a new TrendWarmExecutor
func NewTrendWarmExecutor(trends *TrendService, logger *zap.Logger) *TrendWarmExecutor {
	return &TrendWarmExecutor{trends: trends, logger: logger}
}

// Execute implements scheduler.JobExecutor
func (e *TrendWarmExecutor) Execute(ctx context.Context, job *scheduler.Job) error {
	computed, err := e.trends.Warm(ctx)
	if err != nil {
		return err
	}
	if computed {
		e.logger.Debug("Trend cache warmed", zap.String("job_id", job.ID.String()))
	}
	return nil
}

var _ scheduler.JobExecutor = (*TrendWarmExecutor)(nil)
