package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job sweeps expired refresh-token records out of the session store. Records
// carry a grace window past their expiry so refresh attempts can be answered
// with "expired" instead of "unknown"; this job reclaims them once the window
// has passed.
type Job struct {
	sessions  refreshPurger
	retention time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type refreshPurger interface {
	PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func New(sessions refreshPurger, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		sessions:  sessions,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.sessions == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	purged, err := j.sessions.PurgeExpiredBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge expired refresh records: %w", err)
	}
	if purged > 0 {
		j.logger.Info("purged expired refresh records", zap.Int64("purged", purged))
	}

	return nil
}

// RunEvery blocks, running the sweep on the interval until the context ends.
func (j *Job) RunEvery(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("refresh cleanup sweep failed", zap.Error(err))
			}
		}
	}
}
