package repositories

import (
	"context"
	"time"

	"github.com/horizonit/backend/internal/database"
	"github.com/horizonit/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// ReviewRepository handles database operations for customer reviews.
// db may be nil when no store is configured: reads then serve the fallback
// dataset and writes fail with ErrStorageUnavailable.
type ReviewRepository struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) configured() bool {
	return r.db != nil && r.db.Pool != nil
}

const reviewColumns = `id, name, rating, service, text, approved, COALESCE(ip_hash, ''), created_at`

func scanReviewRow(scanner interface{ Scan(...interface{}) error }) (*models.Review, error) {
	var review models.Review
	err := scanner.Scan(
		&review.ID, &review.Name, &review.Rating, &review.Service,
		&review.Text, &review.Approved, &review.IPHash, &review.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &review, nil
}

func scanReviewRows(rows pgx.Rows) ([]*models.Review, error) {
	defer rows.Close()

	reviews := make([]*models.Review, 0)
	for rows.Next() {
		review, err := scanReviewRow(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}
	return reviews, nil
}

// List returns reviews newest first, optionally only the approved ones.
func (r *ReviewRepository) List(ctx context.Context, approvedOnly bool) ([]*models.Review, error) {
	if !r.configured() {
		return models.DefaultReviews(), nil
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
	if approvedOnly {
		query = `SELECT ` + reviewColumns + ` FROM reviews WHERE approved = true ORDER BY created_at DESC`
	}

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanReviewRows(rows)
}

// Insert stores a new review and fills in its generated ID and timestamp.
func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) error {
	if !r.configured() {
		return models.ErrStorageUnavailable
	}

	query := `
		INSERT INTO reviews (name, rating, service, text, approved, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		review.Name, review.Rating, review.Service, review.Text,
		review.Approved, review.IPHash,
	).Scan(&review.ID, &review.CreatedAt)

	return database.MapPostgresError(err)
}

// SetApproved flips the moderation flag on a review.
func (r *ReviewRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	if !r.configured() {
		return models.ErrStorageUnavailable
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reviews SET approved = $2 WHERE id = $1`, id, approved)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	if !r.configured() {
		return models.ErrStorageUnavailable
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Stats aggregates the review table in one pass for the stats endpoints.
func (r *ReviewRepository) Stats(ctx context.Context) (*models.ReviewStats, error) {
	if !r.configured() {
		return &models.ReviewStats{
			Total:     models.DefaultStats.TotalReviews,
			Approved:  models.DefaultStats.TotalReviews,
			AvgRating: models.DefaultStats.AvgRating,
		}, nil
	}

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE approved),
		       COUNT(*) FILTER (WHERE NOT approved),
		       COALESCE(AVG(rating) FILTER (WHERE approved), 0)
		FROM reviews
	`

	var stats models.ReviewStats
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Approved, &stats.Pending, &stats.AvgRating)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &stats, nil
}

// Recent returns the most recently submitted reviews for the admin dashboard.
func (r *ReviewRepository) Recent(ctx context.Context, limit int) ([]*models.Review, error) {
	if !r.configured() {
		return []*models.Review{}, nil
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanReviewRows(rows)
}

// CountRecentByIPHash counts submissions from one hashed IP since a cutoff.
// Backs the postgres submission window, so the sliding window survives
// process restarts.
func (r *ReviewRepository) CountRecentByIPHash(ctx context.Context, ipHash string, since time.Time) (int, error) {
	if !r.configured() {
		return 0, models.ErrStorageUnavailable
	}

	var count int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE ip_hash = $1 AND created_at >= $2`,
		ipHash, since).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}
