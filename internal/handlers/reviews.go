package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// ReviewServiceInterface defines the interface for review business logic.
type ReviewServiceInterface interface {
	ListApproved(ctx context.Context) ([]*models.Review, error)
	ListAll(ctx context.Context) ([]*models.Review, error)
	Submit(ctx context.Context, input models.ReviewInput, ip string) (*models.Review, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
}

// ReviewHandler handles the public review endpoints.
type ReviewHandler struct {
	service  ReviewServiceInterface
	ipConfig *pkghttp.IPConfig
}

func NewReviewHandler(service ReviewServiceInterface, ipConfig *pkghttp.IPConfig) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		ipConfig: ipConfig,
	}
}

// SubmitReviewRequest represents the request body for a new review.
type SubmitReviewRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Service string `json:"service" validate:"required,min=3,max=100"`
	Text    string `json:"text" validate:"required,min=10,max=500"`
}

// SubmittedReview is the trimmed echo of a stored review returned to the
// submitter; pending reviews expose nothing else publicly.
type SubmittedReview struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// SubmitReviewResponse represents the response for a stored submission.
type SubmitReviewResponse struct {
	Message string          `json:"message"`
	Review  SubmittedReview `json:"review"`
}

// List handles GET /api/reviews. Only approved reviews are returned.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListApproved(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, reviews)
}

// Submit handles POST /api/reviews.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if details := ValidationDetails(req); details != nil {
		pkghttp.WriteValidationError(w, details)
		return
	}

	ip := pkghttp.ExtractClientIP(r, h.ipConfig)

	review, err := h.service.Submit(r.Context(), models.ReviewInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Service: req.Service,
		Text:    req.Text,
	}, ip)
	if err != nil {
		var rateErr *models.RateLimitError
		switch {
		case errors.As(err, &rateErr):
			pkghttp.WriteTooManyRequests(w, "Trop d'avis soumis récemment. Veuillez réessayer plus tard.", rateErr.RetryAfter)
		case errors.Is(err, models.ErrStorageUnavailable):
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "La soumission d'avis est temporairement indisponible.")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, SubmitReviewResponse{
		Message: "Avis ajouté avec succès ! Il sera visible après modération.",
		Review: SubmittedReview{
			ID:     review.ID,
			Name:   review.Name,
			Rating: review.Rating,
		},
	})
}
