package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThrottle(store services.AttemptStore) *services.LoginThrottle {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return services.NewLoginThrottle(store, services.ThrottleConfig{
		MaxAttempts:     5,
		LockoutDuration: 15 * time.Minute,
	}, logger)
}

func TestLoginThrottle_AllowsUnknownKey(t *testing.T) {
	throttle := testThrottle(services.NewMemoryAttemptStore())

	err := throttle.Allow(context.Background(), "key-1")
	assert.NoError(t, err)
}

func TestLoginThrottle_LocksAfterMaxFailures(t *testing.T) {
	throttle := testThrottle(services.NewMemoryAttemptStore())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		throttle.RecordFailure(ctx, "key-1")
		assert.NoError(t, throttle.Allow(ctx, "key-1"), "attempt %d should still be allowed", i+1)
	}

	throttle.RecordFailure(ctx, "key-1")

	err := throttle.Allow(ctx, "key-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRateLimited)

	var rateErr *models.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Greater(t, rateErr.RetryAfter, 14*time.Minute)
	assert.LessOrEqual(t, rateErr.RetryAfter, 15*time.Minute)
}

func TestLoginThrottle_LockoutDoesNotAffectOtherKeys(t *testing.T) {
	throttle := testThrottle(services.NewMemoryAttemptStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		throttle.RecordFailure(ctx, "key-1")
	}

	assert.Error(t, throttle.Allow(ctx, "key-1"))
	assert.NoError(t, throttle.Allow(ctx, "key-2"))
}

func TestLoginThrottle_ResetClearsFailures(t *testing.T) {
	throttle := testThrottle(services.NewMemoryAttemptStore())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		throttle.RecordFailure(ctx, "key-1")
	}
	throttle.Reset(ctx, "key-1")

	// Four more failures after the reset must not lock yet.
	for i := 0; i < 4; i++ {
		throttle.RecordFailure(ctx, "key-1")
	}
	assert.NoError(t, throttle.Allow(ctx, "key-1"))
}

func TestLoginThrottle_LapsedLockoutIsCleared(t *testing.T) {
	store := services.NewMemoryAttemptStore()
	throttle := testThrottle(store)
	ctx := context.Background()

	lockedUntil := time.Now().Add(-time.Minute)
	err := store.Put(ctx, "key-1", &models.LoginAttemptRecord{
		Count:        5,
		FirstAttempt: time.Now().Add(-20 * time.Minute),
		LockedUntil:  &lockedUntil,
	})
	require.NoError(t, err)

	assert.NoError(t, throttle.Allow(ctx, "key-1"))

	// The lapsed record was dropped, so the count starts over.
	record, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestLoginThrottle_FailuresWhileLockedAreNotCounted(t *testing.T) {
	store := services.NewMemoryAttemptStore()
	throttle := testThrottle(store)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		throttle.RecordFailure(ctx, "key-1")
	}

	record, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 5, record.Count)
}

type failingAttemptStore struct{}

func (failingAttemptStore) Get(context.Context, string) (*models.LoginAttemptRecord, error) {
	return nil, errors.New("store down")
}
func (failingAttemptStore) Put(context.Context, string, *models.LoginAttemptRecord) error {
	return errors.New("store down")
}
func (failingAttemptStore) Delete(context.Context, string) error { return errors.New("store down") }
func (failingAttemptStore) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("store down")
}

func TestLoginThrottle_FailsOpenOnStoreErrors(t *testing.T) {
	throttle := testThrottle(failingAttemptStore{})
	ctx := context.Background()

	throttle.RecordFailure(ctx, "key-1")
	assert.NoError(t, throttle.Allow(ctx, "key-1"))
}

func TestMemoryAttemptStore_PurgeExpired(t *testing.T) {
	store := services.NewMemoryAttemptStore()
	ctx := context.Background()
	now := time.Now()

	lapsed := now.Add(-time.Minute)
	active := now.Add(10 * time.Minute)

	require.NoError(t, store.Put(ctx, "lapsed", &models.LoginAttemptRecord{Count: 5, LockedUntil: &lapsed}))
	require.NoError(t, store.Put(ctx, "active", &models.LoginAttemptRecord{Count: 5, LockedUntil: &active}))
	require.NoError(t, store.Put(ctx, "stale", &models.LoginAttemptRecord{Count: 2, FirstAttempt: now.Add(-2 * time.Hour)}))
	require.NoError(t, store.Put(ctx, "fresh", &models.LoginAttemptRecord{Count: 2, FirstAttempt: now}))

	removed, err := store.PurgeExpired(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	record, err := store.Get(ctx, "active")
	require.NoError(t, err)
	assert.NotNil(t, record)

	record, err = store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, record)
}
