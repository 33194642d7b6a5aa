package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/horizonit/backend/internal/models"
)

// SubmissionWindow records review submission timestamps per client key and
// answers how many fall inside the trailing window.
type SubmissionWindow interface {
	CountSince(ctx context.Context, key string, since time.Time) (int, error)
	Record(ctx context.Context, key string, at time.Time) error
	// PruneBefore drops timestamps older than the cutoff.
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
}

// LimiterConfig holds the sliding-window constants for review submission.
type LimiterConfig struct {
	Limit  int
	Window time.Duration
}

// SubmissionLimiter bounds how often one client may submit a review:
// at most Limit submissions within the trailing Window.
type SubmissionLimiter struct {
	window SubmissionWindow
	config LimiterConfig
	logger *slog.Logger
}

func NewSubmissionLimiter(window SubmissionWindow, config LimiterConfig, logger *slog.Logger) *SubmissionLimiter {
	return &SubmissionLimiter{
		window: window,
		config: config,
		logger: logger,
	}
}

// Allow checks the window for key and records the new submission when it is
// admitted. Store errors fail open so a degraded store does not block
// legitimate submissions.
func (l *SubmissionLimiter) Allow(ctx context.Context, key string) error {
	now := time.Now()

	count, err := l.window.CountSince(ctx, key, now.Add(-l.config.Window))
	if err != nil {
		l.logger.Error("submission window read failed", slog.Any("error", err))
		return nil
	}

	if count >= l.config.Limit {
		l.logger.Warn("review submission rate limited",
			slog.String("key", key),
			slog.Int("recent", count))
		return &models.RateLimitError{RetryAfter: l.config.Window}
	}

	if err := l.window.Record(ctx, key, now); err != nil {
		l.logger.Error("submission window write failed", slog.Any("error", err))
	}
	return nil
}
