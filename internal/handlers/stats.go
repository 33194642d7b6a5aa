package handlers

import (
	"context"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// StatsServiceInterface defines the interface for stats business logic.
type StatsServiceInterface interface {
	Public(ctx context.Context) *models.PublicStats
	Dashboard(ctx context.Context) (*models.AdminDashboard, error)
	UpdateSite(ctx context.Context, update *models.SiteStatsUpdate) (*models.SiteStats, error)
}

// StatsHandler handles the public stats endpoint.
type StatsHandler struct {
	service StatsServiceInterface
}

func NewStatsHandler(service StatsServiceInterface) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /api/stats. It always answers 200; storage problems fall
// back to the built-in defaults inside the service.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, h.service.Public(r.Context()))
}
