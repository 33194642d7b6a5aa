package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/pkg/sanitize"
)

// ReviewStore is what the review service needs from persistence.
type ReviewStore interface {
	List(ctx context.Context, approvedOnly bool) ([]*models.Review, error)
	Insert(ctx context.Context, review *models.Review) error
	SetApproved(ctx context.Context, id int64, approved bool) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.ReviewStats, error)
}

// ReviewService handles public review reads, rate-limited submissions and
// admin moderation.
type ReviewService struct {
	store   ReviewStore
	limiter *SubmissionLimiter
	ipSalt  string
	logger  *slog.Logger
}

func NewReviewService(store ReviewStore, limiter *SubmissionLimiter, ipSalt string, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:   store,
		limiter: limiter,
		ipSalt:  ipSalt,
		logger:  logger,
	}
}

// ListApproved returns the approved reviews for the public site. When storage
// is unavailable or holds no approved reviews yet, the built-in defaults are
// served so the site never shows an empty section.
func (s *ReviewService) ListApproved(ctx context.Context) ([]*models.Review, error) {
	reviews, err := s.store.List(ctx, true)
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			s.logger.Warn("review storage unavailable, serving defaults")
			return models.DefaultReviews(), nil
		}
		return nil, err
	}

	if len(reviews) == 0 {
		return models.DefaultReviews(), nil
	}

	return reviews, nil
}

// ListAll returns every review, approved or pending, for the admin view.
func (s *ReviewService) ListAll(ctx context.Context) ([]*models.Review, error) {
	return s.store.List(ctx, false)
}

// Submit sanitizes and stores a new review as pending. Submissions are
// rate limited per client IP.
func (s *ReviewService) Submit(ctx context.Context, input models.ReviewInput, ip string) (*models.Review, error) {
	key := hashIP(s.ipSalt, ip)

	if err := s.limiter.Allow(ctx, key); err != nil {
		s.logger.Warn("review submission rate limited", slog.String("key", key))
		return nil, err
	}

	review := &models.Review{
		Name:      sanitize.Clean(input.Name),
		Rating:    input.Rating,
		Service:   sanitize.Clean(input.Service),
		Text:      sanitize.Clean(input.Text),
		Approved:  false,
		IPHash:    key,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		slog.Int64("review_id", review.ID),
		slog.Int("rating", review.Rating))

	return review, nil
}

// Approve marks a review as publicly visible.
func (s *ReviewService) Approve(ctx context.Context, id int64) error {
	if err := s.store.SetApproved(ctx, id, true); err != nil {
		return err
	}
	s.logger.Info("review approved", slog.Int64("review_id", id))
	return nil
}

// Reject returns a review to the pending state.
func (s *ReviewService) Reject(ctx context.Context, id int64) error {
	if err := s.store.SetApproved(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("review rejected", slog.Int64("review_id", id))
	return nil
}

// Remove permanently deletes a review.
func (s *ReviewService) Remove(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("review deleted", slog.Int64("review_id", id))
	return nil
}
