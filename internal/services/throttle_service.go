package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/horizonit/backend/internal/models"
)

// AttemptStore holds the per-key login failure records. Implementations may
// be process-local (single instance) or shared (multi-instance); the throttle
// logic is the same either way.
type AttemptStore interface {
	// Get returns the record for a key, or nil when none exists.
	Get(ctx context.Context, key string) (*models.LoginAttemptRecord, error)
	Put(ctx context.Context, key string, record *models.LoginAttemptRecord) error
	Delete(ctx context.Context, key string) error
	// PurgeExpired removes lapsed lockouts and records older than the cutoff.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// ThrottleConfig holds login throttle thresholds.
type ThrottleConfig struct {
	MaxAttempts     int
	LockoutDuration time.Duration
}

// LoginThrottle locks a client key out after repeated failed logins.
// Lockout expiry is lazy: it is observed on the next check, not swept by a
// timer, so the state machine works identically against any store.
type LoginThrottle struct {
	store  AttemptStore
	config ThrottleConfig
	logger *slog.Logger
}

func NewLoginThrottle(store AttemptStore, config ThrottleConfig, logger *slog.Logger) *LoginThrottle {
	return &LoginThrottle{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Allow reports whether a login attempt from key may proceed. A locked key
// gets a RateLimitError carrying the remaining lockout; a lapsed lockout is
// cleared on the spot. Store errors fail open: an unavailable store should
// not lock the admin out of their own panel.
func (t *LoginThrottle) Allow(ctx context.Context, key string) error {
	record, err := t.store.Get(ctx, key)
	if err != nil {
		t.logger.Error("throttle store read failed", slog.Any("error", err))
		return nil
	}
	if record == nil {
		return nil
	}

	now := time.Now()
	if record.Locked(now) {
		return &models.RateLimitError{RetryAfter: record.LockedUntil.Sub(now)}
	}

	// Lockout lapsed: reset so the next failure starts a fresh count.
	if record.LockedUntil != nil {
		if err := t.store.Delete(ctx, key); err != nil {
			t.logger.Error("throttle store delete failed", slog.Any("error", err))
		}
	}

	return nil
}

// RecordFailure counts a failed login and locks the key once the threshold
// is reached. Attempts made while locked are not counted again.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) {
	record, err := t.store.Get(ctx, key)
	if err != nil {
		t.logger.Error("throttle store read failed", slog.Any("error", err))
		return
	}

	now := time.Now()
	if record == nil {
		record = &models.LoginAttemptRecord{FirstAttempt: now}
	}
	if record.Locked(now) {
		return
	}

	record.Count++
	if record.Count >= t.config.MaxAttempts {
		lockedUntil := now.Add(t.config.LockoutDuration)
		record.LockedUntil = &lockedUntil
		t.logger.Warn("client locked out after repeated login failures",
			slog.String("key", key),
			slog.Int("failures", record.Count),
			slog.Duration("lockout", t.config.LockoutDuration))
	}

	if err := t.store.Put(ctx, key, record); err != nil {
		t.logger.Error("throttle store write failed", slog.Any("error", err))
	}
}

// Reset clears the failure record after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) {
	if err := t.store.Delete(ctx, key); err != nil {
		t.logger.Error("throttle store delete failed", slog.Any("error", err))
	}
}
