package models

import "time"

// Fallback dataset served when the hosted store is unconfigured or empty, so
// the public site never renders blank sections.

// DefaultStats are the site counters shown before any admin has set them.
var DefaultStats = PublicStats{
	PCBuilt:      50,
	HappyClients: 100,
	ResponseTime: 24,
	SuccessRate:  100,
	AvgRating:    5.0,
	TotalReviews: 3,
}

// DefaultSiteStats is the curated half of DefaultStats.
var DefaultSiteStats = SiteStats{
	PCBuilt:      50,
	HappyClients: 100,
	ResponseTime: 24,
}

// DefaultReviews is returned by read paths when no database is configured.
func DefaultReviews() []*Review {
	return []*Review{
		{
			ID:        999,
			Name:      "Thomas M.",
			Rating:    5,
			Service:   "Montage PC Gaming",
			Text:      "Service au top ! Mon PC gaming fonctionne parfaitement, cable management impeccable. Je recommande vivement !",
			Approved:  true,
			IsDefault: true,
			CreatedAt: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        998,
			Name:      "Sarah L.",
			Rating:    5,
			Service:   "Dépannage PC",
			Text:      "Intervention rapide pour un écran bleu. Problème résolu en 1h, très professionnel !",
			Approved:  true,
			IsDefault: true,
			CreatedAt: time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        997,
			Name:      "Kevin R.",
			Rating:    4,
			Service:   "Optimisation PC",
			Text:      "PC beaucoup plus rapide après optimisation. Bon rapport qualité/prix.",
			Approved:  true,
			IsDefault: true,
			CreatedAt: time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}
