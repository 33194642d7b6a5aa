package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/pkg/logger"
	"github.com/horizonit/backend/pkg/sanitize"
)

// LeadStore is what the lead service needs from persistence.
type LeadStore interface {
	List(ctx context.Context, status string) ([]*models.Lead, error)
	Insert(ctx context.Context, lead *models.Lead) error
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.LeadStats, error)
}

// LeadNotifier sends a notification to the business when a new lead arrives.
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *models.Lead) error
}

// LeadService handles contact-form submissions and the admin lead pipeline.
// The notifier is optional; when nil, leads are stored without notification.
type LeadService struct {
	store    LeadStore
	notifier LeadNotifier
	logger   *slog.Logger
}

func NewLeadService(store LeadStore, notifier LeadNotifier, logger *slog.Logger) *LeadService {
	return &LeadService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit sanitizes and stores a new lead with status "new". Notification
// failures are logged but never surfaced to the submitter; the lead is
// already stored at that point.
func (s *LeadService) Submit(ctx context.Context, input models.LeadInput) (*models.Lead, error) {
	lead := &models.Lead{
		Name:      sanitize.Clean(input.Name),
		Email:     sanitize.Clean(input.Email),
		Service:   sanitize.Clean(input.Service),
		Message:   sanitize.Clean(input.Message),
		Status:    models.LeadStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, lead); err != nil {
		return nil, err
	}

	s.logger.Info("lead submitted",
		slog.Int64("lead_id", lead.ID),
		slog.String("email", logger.SanitizedEmail(lead.Email)))

	if s.notifier != nil {
		if err := s.notifier.NotifyNewLead(ctx, lead); err != nil {
			s.logger.Error("failed to send lead notification",
				slog.Int64("lead_id", lead.ID),
				slog.Any("error", err))
		}
	}

	return lead, nil
}

// List returns leads for the admin view, optionally filtered by status.
// An empty status or "all" returns everything.
func (s *LeadService) List(ctx context.Context, status string) ([]*models.Lead, error) {
	if status != "" && status != "all" && !models.ValidLeadStatus(status) {
		return nil, models.ErrBadRequest
	}
	return s.store.List(ctx, status)
}

// UpdateStatus moves a lead through the pipeline.
func (s *LeadService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Lead, error) {
	if !models.ValidLeadStatus(status) {
		return nil, models.ErrBadRequest
	}

	lead, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("lead status updated",
		slog.Int64("lead_id", id),
		slog.String("status", status))

	return lead, nil
}

// Delete permanently removes a lead.
func (s *LeadService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("lead deleted", slog.Int64("lead_id", id))
	return nil
}
