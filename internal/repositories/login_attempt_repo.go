package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/horizonit/backend/internal/database"
	"github.com/horizonit/backend/internal/models"
)

// LoginAttemptRepository is the shared-store backend for the login throttle:
// one row per hashed client IP. With it, multiple instances see the same
// failure counts, unlike the default in-memory map.
type LoginAttemptRepository struct {
	db *database.DB
}

func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Get returns the attempt record for a key, or nil when none exists.
func (r *LoginAttemptRepository) Get(ctx context.Context, key string) (*models.LoginAttemptRecord, error) {
	query := `
		SELECT attempt_count, first_attempt, locked_until
		FROM login_attempts WHERE ip_hash = $1
	`

	var record models.LoginAttemptRecord
	err := r.db.Pool.QueryRow(ctx, query, key).Scan(
		&record.Count, &record.FirstAttempt, &record.LockedUntil)
	if err != nil {
		if mapped := database.MapPostgresError(err); errors.Is(mapped, models.ErrNotFound) {
			return nil, nil
		}
		return nil, database.MapPostgresError(err)
	}
	return &record, nil
}

// Put writes the attempt record for a key, replacing any existing one.
func (r *LoginAttemptRepository) Put(ctx context.Context, key string, record *models.LoginAttemptRecord) error {
	query := `
		INSERT INTO login_attempts (ip_hash, attempt_count, first_attempt, locked_until, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (ip_hash) DO UPDATE SET
			attempt_count = $2,
			first_attempt = $3,
			locked_until  = $4,
			updated_at    = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		key, record.Count, record.FirstAttempt, record.LockedUntil)
	return database.MapPostgresError(err)
}

func (r *LoginAttemptRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM login_attempts WHERE ip_hash = $1`, key)
	return database.MapPostgresError(err)
}

// PurgeExpired removes rows whose lockout has lapsed or whose first attempt
// predates the cutoff. Lockout expiry itself stays lazy; this is hygiene.
func (r *LoginAttemptRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM login_attempts
		WHERE (locked_until IS NOT NULL AND locked_until <= NOW())
		   OR (locked_until IS NULL AND first_attempt < $1)
	`

	tag, err := r.db.Pool.Exec(ctx, query, before)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return tag.RowsAffected(), nil
}
