package models

import "time"

// SiteStats is the singleton row of admin-curated site counters.
type SiteStats struct {
	PCBuilt      int       `json:"pcBuilt"`
	HappyClients int       `json:"happyClients"`
	ResponseTime int       `json:"responseTime"` // hours
	UpdatedAt    time.Time `json:"-"`
}

// SiteStatsUpdate carries a partial update to the site counters; nil fields
// are left untouched.
type SiteStatsUpdate struct {
	PCBuilt      *int
	HappyClients *int
	ResponseTime *int
}

// PublicStats is the derived summary served to the public site: the curated
// counters merged with statistics computed from approved reviews.
type PublicStats struct {
	PCBuilt      int     `json:"pcBuilt"`
	HappyClients int     `json:"happyClients"`
	ResponseTime int     `json:"responseTime"`
	SuccessRate  int     `json:"successRate"`
	AvgRating    float64 `json:"avgRating"`
	TotalReviews int     `json:"totalReviews"`
}

// AdminDashboard aggregates everything the admin panel shows at a glance.
type AdminDashboard struct {
	Reviews     ReviewStats `json:"reviews"`
	Leads       LeadStats   `json:"leads"`
	Site        SiteStats   `json:"site"`
	Recent      []*Review   `json:"recent"`
	RecentLeads []*Lead     `json:"recentLeads"`
}
