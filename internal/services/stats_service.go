package services

import (
	"context"
	"log/slog"
	"math"

	"github.com/horizonit/backend/internal/models"
)

// SiteStatsStore is what the stats service needs from persistence.
type SiteStatsStore interface {
	Get(ctx context.Context) (*models.SiteStats, error)
	Upsert(ctx context.Context, update *models.SiteStatsUpdate) error
}

// RecentReviewLister extends ReviewStore with the dashboard recency query.
type RecentReviewLister interface {
	Stats(ctx context.Context) (*models.ReviewStats, error)
	Recent(ctx context.Context, limit int) ([]*models.Review, error)
}

// RecentLeadLister extends LeadStore with the dashboard recency query.
type RecentLeadLister interface {
	Stats(ctx context.Context) (*models.LeadStats, error)
	Recent(ctx context.Context, limit int) ([]*models.Lead, error)
}

const dashboardRecentLimit = 5

// StatsService computes the public stats summary and the admin dashboard.
type StatsService struct {
	site    SiteStatsStore
	reviews RecentReviewLister
	leads   RecentLeadLister
	logger  *slog.Logger
}

func NewStatsService(site SiteStatsStore, reviews RecentReviewLister, leads RecentLeadLister, logger *slog.Logger) *StatsService {
	return &StatsService{
		site:    site,
		reviews: reviews,
		leads:   leads,
		logger:  logger,
	}
}

// Public returns the stats summary for the public site. It never fails:
// any storage error falls back to the built-in defaults so the landing page
// always has numbers to show.
func (s *StatsService) Public(ctx context.Context) *models.PublicStats {
	site, err := s.site.Get(ctx)
	if err != nil {
		s.logger.Warn("site stats unavailable, serving defaults", slog.Any("error", err))
		site = &models.DefaultSiteStats
	}

	out := &models.PublicStats{
		PCBuilt:      site.PCBuilt,
		HappyClients: site.HappyClients,
		ResponseTime: site.ResponseTime,
		SuccessRate:  100,
		AvgRating:    models.DefaultStats.AvgRating,
		TotalReviews: models.DefaultStats.TotalReviews,
	}

	reviewStats, err := s.reviews.Stats(ctx)
	if err != nil {
		s.logger.Warn("review stats unavailable, serving defaults", slog.Any("error", err))
		return out
	}

	out.TotalReviews = reviewStats.Approved
	if reviewStats.Approved > 0 {
		out.AvgRating = round1(reviewStats.AvgRating)
	}

	return out
}

// Dashboard aggregates review, lead and site statistics with the most recent
// entries of each for the admin panel.
func (s *StatsService) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	reviewStats, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, err
	}

	leadStats, err := s.leads.Stats(ctx)
	if err != nil {
		return nil, err
	}

	site, err := s.site.Get(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.reviews.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	recentLeads, err := s.leads.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	return &models.AdminDashboard{
		Reviews:     *reviewStats,
		Leads:       *leadStats,
		Site:        *site,
		Recent:      recent,
		RecentLeads: recentLeads,
	}, nil
}

// UpdateSite applies a partial update to the curated site counters.
func (s *StatsService) UpdateSite(ctx context.Context, update *models.SiteStatsUpdate) (*models.SiteStats, error) {
	if err := s.site.Upsert(ctx, update); err != nil {
		return nil, err
	}

	site, err := s.site.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("site stats updated")
	return site, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
