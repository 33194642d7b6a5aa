package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/horizonit/backend/internal/auth"
	"github.com/horizonit/backend/internal/handlers"
	"github.com/horizonit/backend/internal/middleware"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// RegisterRoutes registers all application routes under /api.
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	reviewHandler *handlers.ReviewHandler,
	contactHandler *handlers.ContactHandler,
	statsHandler *handlers.StatsHandler,
	adminReviewHandler *handlers.AdminReviewHandler,
	adminLeadHandler *handlers.AdminLeadHandler,
	adminStatsHandler *handlers.AdminStatsHandler,
	tokenManager *auth.TokenManager,
) {
	// Unknown methods on known paths answer JSON like everything else.
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteMethodNotAllowed(w)
	})
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteNotFound(w, "Route not found")
	})

	rateLimitConfig := middleware.DefaultAuthRateLimit()

	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth", authHandler.Login)
		r.Get("/reviews", reviewHandler.List)
		r.Post("/reviews", reviewHandler.Submit)
		r.Post("/contact", contactHandler.Submit)
		r.Get("/stats", statsHandler.Get)

		// Admin routes - valid token required
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(tokenManager))

			r.Get("/admin-reviews", adminReviewHandler.List)
			r.Post("/admin-reviews", adminReviewHandler.Moderate)
			r.Get("/admin-leads", adminLeadHandler.List)
			r.Post("/admin-leads", adminLeadHandler.Act)
			r.Get("/admin-stats", adminStatsHandler.Dashboard)
			r.Post("/admin-stats", adminStatsHandler.UpdateSite)
		})
	})
}
