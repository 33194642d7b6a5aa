package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// AdminLeadHandler handles the admin lead pipeline. All routes sit behind
// the admin token middleware.
type AdminLeadHandler struct {
	service LeadServiceInterface
}

func NewAdminLeadHandler(service LeadServiceInterface) *AdminLeadHandler {
	return &AdminLeadHandler{service: service}
}

// LeadActionRequest represents the request body for a lead action. The
// status field is required only for the update action.
type LeadActionRequest struct {
	Action string `json:"action" validate:"required,oneof=update delete"`
	LeadID int64  `json:"leadId" validate:"required,gt=0"`
	Status string `json:"status" validate:"omitempty,oneof=new contacted done"`
}

// LeadActionResponse confirms a lead action. Lead is set for updates only.
type LeadActionResponse struct {
	Message string       `json:"message"`
	Lead    *models.Lead `json:"lead,omitempty"`
}

// List handles GET /api/admin-leads with an optional ?status= filter.
func (h *AdminLeadHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	leads, err := h.service.List(r.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Unknown status filter")
		case errors.Is(err, models.ErrStorageUnavailable):
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Lead storage is not configured")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, leads)
}

// Act handles POST /api/admin-leads.
func (h *AdminLeadHandler) Act(w http.ResponseWriter, r *http.Request) {
	var req LeadActionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if details := ValidationDetails(req); details != nil {
		pkghttp.WriteValidationError(w, details)
		return
	}

	switch req.Action {
	case "update":
		if req.Status == "" {
			pkghttp.WriteBadRequest(w, "Status is required for the update action")
			return
		}

		lead, err := h.service.UpdateStatus(r.Context(), req.LeadID, req.Status)
		if err != nil {
			h.writeActionError(w, err)
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, LeadActionResponse{
			Message: "Lead mis à jour",
			Lead:    lead,
		})

	case "delete":
		if err := h.service.Delete(r.Context(), req.LeadID); err != nil {
			h.writeActionError(w, err)
			return
		}

		pkghttp.WriteJSON(w, http.StatusOK, LeadActionResponse{
			Message: "Lead supprimé",
		})
	}
}

func (h *AdminLeadHandler) writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Lead not found")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid lead action")
	case errors.Is(err, models.ErrStorageUnavailable):
		pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Lead storage is not configured")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
