package repositories

import (
	"context"

	"github.com/horizonit/backend/internal/database"
	"github.com/horizonit/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

// LeadRepository handles database operations for contact leads. Unlike
// reviews there is no fallback dataset: leads are never publicly readable,
// and losing a customer request silently would be worse than a clear error.
type LeadRepository struct {
	db *database.DB
}

func NewLeadRepository(db *database.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) configured() bool {
	return r.db != nil && r.db.Pool != nil
}

const leadColumns = `id, name, email, service, message, status, created_at`

func scanLeadRows(rows pgx.Rows) ([]*models.Lead, error) {
	defer rows.Close()

	leads := make([]*models.Lead, 0)
	for rows.Next() {
		var lead models.Lead
		err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Service,
			&lead.Message, &lead.Status, &lead.CreatedAt)
		if err != nil {
			return nil, database.MapPostgresError(err)
		}
		leads = append(leads, &lead)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}
	return leads, nil
}

// List returns leads newest first. status filters to one pipeline status;
// "" or "all" returns everything.
func (r *LeadRepository) List(ctx context.Context, status string) ([]*models.Lead, error) {
	if !r.configured() {
		return nil, models.ErrStorageUnavailable
	}

	var (
		rows pgx.Rows
		err  error
	)
	if status == "" || status == "all" {
		rows, err = r.db.Pool.Query(ctx,
			`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	} else {
		rows, err = r.db.Pool.Query(ctx,
			`SELECT `+leadColumns+` FROM leads WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanLeadRows(rows)
}

// Insert stores a new lead with status "new" and fills in its generated
// ID, status and timestamp.
func (r *LeadRepository) Insert(ctx context.Context, lead *models.Lead) error {
	if !r.configured() {
		return models.ErrStorageUnavailable
	}

	query := `
		INSERT INTO leads (name, email, service, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		lead.Name, lead.Email, lead.Service, lead.Message,
	).Scan(&lead.ID, &lead.Status, &lead.CreatedAt)

	return database.MapPostgresError(err)
}

// UpdateStatus moves a lead through the pipeline and returns the updated row.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Lead, error) {
	if !r.configured() {
		return nil, models.ErrStorageUnavailable
	}

	query := `
		UPDATE leads SET status = $2 WHERE id = $1
		RETURNING ` + leadColumns

	var lead models.Lead
	err := r.db.Pool.QueryRow(ctx, query, id, status).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Service,
		&lead.Message, &lead.Status, &lead.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	if !r.configured() {
		return models.ErrStorageUnavailable
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Stats counts leads per pipeline status in one pass.
func (r *LeadRepository) Stats(ctx context.Context) (*models.LeadStats, error) {
	if !r.configured() {
		return &models.LeadStats{}, nil
	}

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'new'),
		       COUNT(*) FILTER (WHERE status = 'contacted'),
		       COUNT(*) FILTER (WHERE status = 'done')
		FROM leads
	`

	var stats models.LeadStats
	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.New, &stats.Contacted, &stats.Done)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &stats, nil
}

// Recent returns the most recently submitted leads for the admin dashboard.
func (r *LeadRepository) Recent(ctx context.Context, limit int) ([]*models.Lead, error) {
	if !r.configured() {
		return []*models.Lead{}, nil
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return scanLeadRows(rows)
}
