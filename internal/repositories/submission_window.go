package repositories

import (
	"context"
	"time"
)

// ReviewSubmissionWindow backs the review submission limiter with the reviews
// table itself: counting rows by ip_hash gives the sliding window without a
// separate bookkeeping table. Record is a no-op because inserting the review
// is the record, and PruneBefore never deletes since reviews are permanent.
type ReviewSubmissionWindow struct {
	reviews *ReviewRepository
}

func NewReviewSubmissionWindow(reviews *ReviewRepository) *ReviewSubmissionWindow {
	return &ReviewSubmissionWindow{reviews: reviews}
}

func (w *ReviewSubmissionWindow) CountSince(ctx context.Context, key string, since time.Time) (int, error) {
	return w.reviews.CountRecentByIPHash(ctx, key, since)
}

func (w *ReviewSubmissionWindow) Record(ctx context.Context, key string, at time.Time) error {
	return nil
}

func (w *ReviewSubmissionWindow) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
