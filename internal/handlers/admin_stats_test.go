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

func TestDashboard_AggregatesEverything(t *testing.T) {
	mock := &handlers.MockStatsService{
		DashboardFunc: func(ctx context.Context) (*models.AdminDashboard, error) {
			return &models.AdminDashboard{
				Reviews: models.ReviewStats{Total: 6, Approved: 4, Pending: 2, AvgRating: 4.5},
				Leads:   models.LeadStats{Total: 3, New: 2, Contacted: 1},
				Site:    models.SiteStats{PCBuilt: 72},
				Recent:  []*models.Review{{ID: 1}},
			}, nil
		},
	}

	handler := handlers.NewAdminStatsHandler(mock)
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "GET", "/api/admin-stats", nil))

	w := httptest.NewRecorder()
	handler.Dashboard(w, req)

	var dash models.AdminDashboard
	handlers.AssertJSONResponse(t, w, 200, &dash)
	assert.Equal(t, 6, dash.Reviews.Total)
	assert.Equal(t, 2, dash.Leads.New)
	assert.Len(t, dash.Recent, 1)
}

func TestDashboard_StorageUnavailable(t *testing.T) {
	mock := &handlers.MockStatsService{
		DashboardFunc: func(ctx context.Context) (*models.AdminDashboard, error) {
			return nil, models.ErrStorageUnavailable
		},
	}

	handler := handlers.NewAdminStatsHandler(mock)
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "GET", "/api/admin-stats", nil))

	w := httptest.NewRecorder()
	handler.Dashboard(w, req)

	handlers.AssertErrorResponse(t, w, 503, "storage_unavailable")
}

func TestUpdateSiteStats_PartialUpdate(t *testing.T) {
	var gotUpdate *models.SiteStatsUpdate
	mock := &handlers.MockStatsService{
		UpdateSiteFunc: func(ctx context.Context, update *models.SiteStatsUpdate) (*models.SiteStats, error) {
			gotUpdate = update
			return &models.SiteStats{PCBuilt: 80, HappyClients: 140, ResponseTime: 12}, nil
		},
	}

	pcBuilt := 80
	handler := handlers.NewAdminStatsHandler(mock)
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-stats", handlers.UpdateSiteStatsRequest{
		PCBuilt: &pcBuilt,
	}))

	w := httptest.NewRecorder()
	handler.UpdateSite(w, req)

	var stats models.SiteStats
	handlers.AssertJSONResponse(t, w, 200, &stats)
	assert.Equal(t, 80, stats.PCBuilt)

	require.NotNil(t, gotUpdate)
	require.NotNil(t, gotUpdate.PCBuilt)
	assert.Equal(t, 80, *gotUpdate.PCBuilt)
	assert.Nil(t, gotUpdate.HappyClients)
	assert.Nil(t, gotUpdate.ResponseTime)
}

func TestUpdateSiteStats_RejectsNegativeCounter(t *testing.T) {
	negative := -1
	handler := handlers.NewAdminStatsHandler(&handlers.MockStatsService{})
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-stats", handlers.UpdateSiteStatsRequest{
		PCBuilt: &negative,
	}))

	w := httptest.NewRecorder()
	handler.UpdateSite(w, req)

	handlers.AssertErrorResponse(t, w, 400, "invalid_input")
}

func TestUpdateSiteStats_RejectsEmptyUpdate(t *testing.T) {
	handler := handlers.NewAdminStatsHandler(&handlers.MockStatsService{})
	req := handlers.WithAdminContext(handlers.NewTestRequest(t, "POST", "/api/admin-stats", handlers.UpdateSiteStatsRequest{}))

	w := httptest.NewRecorder()
	handler.UpdateSite(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}
