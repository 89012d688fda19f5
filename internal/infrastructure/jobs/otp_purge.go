package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"monkframe.backend/internal/domain/repositories"
	"monkframe.backend/pkg/logger"
)

// OtpPurgeJob sweeps expired one-time codes out of the store. Verification
// already rejects expired codes, the sweep only keeps the table small.
type OtpPurgeJob struct {
	repo     repositories.OtpRepository
	interval time.Duration
	stop     chan struct{}
}

func NewOtpPurgeJob(repo repositories.OtpRepository) *OtpPurgeJob {
	return &OtpPurgeJob{
		repo:     repo,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *OtpPurgeJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting OTP purge job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "OTP purge job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "OTP purge job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *OtpPurgeJob) Stop() {
	close(j.stop)
}

func (j *OtpPurgeJob) sweep(ctx context.Context) {
	swept, err := j.repo.DeleteExpired(ctx)
	if err != nil {
		logger.Error(ctx, "Error sweeping expired OTP codes", zap.Error(err))
		return
	}
	if swept > 0 {
		logger.Info(ctx, "Swept expired OTP codes", zap.Int64("count", swept))
	}
}
