package repositories

import (
	"context"
	"errors"

	"github.com/horizonit/backend/internal/database"
	"github.com/horizonit/backend/internal/models"
)

// StatsRepository manages the singleton site_stats row (id = 1).
type StatsRepository struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) configured() bool {
	return r.db != nil && r.db.Pool != nil
}

// Get returns the curated site counters, or the defaults when the store is
// unconfigured or the row has never been written.
func (r *StatsRepository) Get(ctx context.Context) (*models.SiteStats, error) {
	if !r.configured() {
		stats := models.DefaultSiteStats
		return &stats, nil
	}

	query := `SELECT pc_built, happy_clients, response_time, updated_at FROM site_stats WHERE id = 1`

	var stats models.SiteStats
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&stats.PCBuilt, &stats.HappyClients, &stats.ResponseTime, &stats.UpdatedAt)
	if err != nil {
		if mapped := database.MapPostgresError(err); errors.Is(mapped, models.ErrNotFound) {
			defaults := models.DefaultSiteStats
			return &defaults, nil
		}
		return nil, database.MapPostgresError(err)
	}
	return &stats, nil
}

// Upsert applies a partial update to the counters; nil fields keep their
// current value (or the default on first write).
func (r *StatsRepository) Upsert(ctx context.Context, update *models.SiteStatsUpdate) error {
	if !r.configured() {
		return models.ErrStorageUnavailable
	}

	query := `
		INSERT INTO site_stats (id, pc_built, happy_clients, response_time, updated_at)
		VALUES (1, COALESCE($1, 50), COALESCE($2, 100), COALESCE($3, 24), NOW())
		ON CONFLICT (id) DO UPDATE SET
			pc_built      = COALESCE($1, site_stats.pc_built),
			happy_clients = COALESCE($2, site_stats.happy_clients),
			response_time = COALESCE($3, site_stats.response_time),
			updated_at    = NOW()
	`

	_, err := r.db.Pool.Exec(ctx, query,
		update.PCBuilt, update.HappyClients, update.ResponseTime)
	return database.MapPostgresError(err)
}
