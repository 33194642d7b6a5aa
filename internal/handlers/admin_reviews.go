package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// AdminReviewHandler handles review moderation. All routes sit behind the
// admin token middleware.
type AdminReviewHandler struct {
	service ReviewServiceInterface
}

func NewAdminReviewHandler(service ReviewServiceInterface) *AdminReviewHandler {
	return &AdminReviewHandler{service: service}
}

// ModerateReviewRequest represents the request body for a moderation action.
type ModerateReviewRequest struct {
	Action   string `json:"action" validate:"required,oneof=approve reject delete"`
	ReviewID int64  `json:"reviewId" validate:"required,gt=0"`
}

// ModerateReviewResponse confirms a moderation action.
type ModerateReviewResponse struct {
	Message  string `json:"message"`
	ReviewID int64  `json:"reviewId"`
}

// List handles GET /api/admin-reviews. Pending reviews are included.
func (h *AdminReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListAll(r.Context())
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Review storage is not configured")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, reviews)
}

// Moderate handles POST /api/admin-reviews.
func (h *AdminReviewHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req ModerateReviewRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if details := ValidationDetails(req); details != nil {
		pkghttp.WriteValidationError(w, details)
		return
	}

	var (
		err     error
		message string
	)
	switch req.Action {
	case "approve":
		err = h.service.Approve(r.Context(), req.ReviewID)
		message = "Avis approuvé avec succès"
	case "reject":
		err = h.service.Reject(r.Context(), req.ReviewID)
		message = "Avis rejeté"
	case "delete":
		err = h.service.Remove(r.Context(), req.ReviewID)
		message = "Avis supprimé définitivement"
	}

	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Review not found")
		case errors.Is(err, models.ErrStorageUnavailable):
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Review storage is not configured")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ModerateReviewResponse{
		Message:  message,
		ReviewID: req.ReviewID,
	})
}
