package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/horizonit/backend/internal/services"
)

// CleanupManager periodically drops stale throttle records and submission
// timestamps so neither store grows without bound.
type CleanupManager struct {
	attempts    services.AttemptStore
	submissions services.SubmissionWindow
	retention   time.Duration
	logger      *slog.Logger
	interval    time.Duration
	stopCh      chan struct{}
}

// NewCleanupManager creates a new cleanup manager. Records older than the
// retention are purged on every tick.
func NewCleanupManager(
	attempts services.AttemptStore,
	submissions services.SubmissionWindow,
	retention time.Duration,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupManager {
	return &CleanupManager{
		attempts:    attempts,
		submissions: submissions,
		retention:   retention,
		logger:      logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the periodic cleanup task
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

func (cm *CleanupManager) runCleanup(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-cm.retention)

	purged, err := cm.attempts.PurgeExpired(cleanupCtx, cutoff)
	if err != nil {
		cm.logger.Error("failed to purge login attempt records", slog.Any("error", err))
	} else if purged > 0 {
		cm.logger.Info("purged stale login attempt records", slog.Int64("rows_deleted", purged))
	}

	pruned, err := cm.submissions.PruneBefore(cleanupCtx, cutoff)
	if err != nil {
		cm.logger.Error("failed to prune submission timestamps", slog.Any("error", err))
	} else if pruned > 0 {
		cm.logger.Info("pruned old submission timestamps", slog.Int64("rows_deleted", pruned))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
