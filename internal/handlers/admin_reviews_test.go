package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/horizonit/backend/internal/handlers"
	"github.com/horizonit/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListReviews_IncludesPending(t *testing.T) {
	mock := &handlers.MockReviewService{
		ListAllFunc: func(ctx context.Context) ([]*models.Review, error) {
			return []*models.Review{
				{ID: 1, Approved: true},
				{ID: 2, Approved: false},
			}, nil
		},
	}

	handler := handlers.NewAdminReviewHandler(mock)
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "GET", "/api/admin-reviews", nil))

	w := httptest.NewRecorder()
	handler.List(w, req)

	var reviews []*models.Review
	handlers.AssertJSONResponse(t, w, 200, &reviews)
	assert.Len(t, reviews, 2)
}

func TestModerateReview_Actions(t *testing.T) {
	tests := []struct {
		action   string
		approved *bool
		deleted  bool
	}{
		{"approve", boolPtr(true), false},
		{"reject", boolPtr(false), false},
		{"delete", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			var approvedSet *bool
			var removedID int64
			mock := &handlers.MockReviewService{
				ApproveFunc: func(ctx context.Context, id int64) error {
					v := true
					approvedSet = &v
					return nil
				},
				RejectFunc: func(ctx context.Context, id int64) error {
					v := false
					approvedSet = &v
					return nil
				},
				RemoveFunc: func(ctx context.Context, id int64) error {
					removedID = id
					return nil
				},
			}

			handler := handlers.NewAdminReviewHandler(mock)
			req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-reviews", handlers.ModerateReviewRequest{
				Action:   tt.action,
				ReviewID: 7,
			}))

			w := httptest.NewRecorder()
			handler.Moderate(w, req)

			var resp handlers.ModerateReviewResponse
			handlers.AssertJSONResponse(t, w, 200, &resp)
			assert.Equal(t, int64(7), resp.ReviewID)
			assert.NotEmpty(t, resp.Message)

			if tt.approved != nil {
				require.NotNil(t, approvedSet)
				assert.Equal(t, *tt.approved, *approvedSet)
			}
			if tt.deleted {
				assert.Equal(t, int64(7), removedID)
			}
		})
	}
}

func TestModerateReview_UnknownAction(t *testing.T) {
	handler := handlers.NewAdminReviewHandler(&handlers.MockReviewService{})
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-reviews", handlers.ModerateReviewRequest{
		Action:   "archive",
		ReviewID: 7,
	}))

	w := httptest.NewRecorder()
	handler.Moderate(w, req)

	handlers.AssertErrorResponse(t, w, 400, "invalid_input")
}

func TestModerateReview_MissingReviewID(t *testing.T) {
	handler := handlers.NewAdminReviewHandler(&handlers.MockReviewService{})
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-reviews", handlers.ModerateReviewRequest{
		Action: "approve",
	}))

	w := httptest.NewRecorder()
	handler.Moderate(w, req)

	handlers.AssertErrorResponse(t, w, 400, "invalid_input")
}

func TestModerateReview_NotFound(t *testing.T) {
	mock := &handlers.MockReviewService{
		ApproveFunc: func(ctx context.Context, id int64) error {
			return models.ErrNotFound
		},
	}

	handler := handlers.NewAdminReviewHandler(mock)
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-reviews", handlers.ModerateReviewRequest{
		Action:   "approve",
		ReviewID: 404,
	}))

	w := httptest.NewRecorder()
	handler.Moderate(w, req)

	handlers.AssertErrorResponse(t, w, 404, "not_found")
}

func boolPtr(v bool) *bool { return &v }
