package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// AdminStatsHandler handles the admin dashboard and the curated site
// counters. All routes sit behind the admin token middleware.
type AdminStatsHandler struct {
	service StatsServiceInterface
}

func NewAdminStatsHandler(service StatsServiceInterface) *AdminStatsHandler {
	return &AdminStatsHandler{service: service}
}

// UpdateSiteStatsRequest represents a partial update to the site counters.
// Omitted fields keep their current value.
type UpdateSiteStatsRequest struct {
	PCBuilt      *int `json:"pcBuilt" validate:"omitempty,gte=0"`
	HappyClients *int `json:"happyClients" validate:"omitempty,gte=0"`
	ResponseTime *int `json:"responseTime" validate:"omitempty,gte=0"`
}

// Dashboard handles GET /api/admin-stats.
func (h *AdminStatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.Dashboard(r.Context())
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Storage is not configured")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, dash)
}

// UpdateSite handles POST /api/admin-stats.
func (h *AdminStatsHandler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var req UpdateSiteStatsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if details := ValidationDetails(req); details != nil {
		pkghttp.WriteValidationError(w, details)
		return
	}

	if req.PCBuilt == nil && req.HappyClients == nil && req.ResponseTime == nil {
		pkghttp.WriteBadRequest(w, "At least one counter must be provided")
		return
	}

	stats, err := h.service.UpdateSite(r.Context(), &models.SiteStatsUpdate{
		PCBuilt:      req.PCBuilt,
		HappyClients: req.HappyClients,
		ResponseTime: req.ResponseTime,
	})
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Storage is not configured")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, stats)
}
