package models

import "time"

// Review is a customer testimonial. It is created unapproved by a public
// submission and becomes publicly visible only once an admin approves it.
type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Service   string    `json:"service"`
	Text      string    `json:"text"`
	Approved  bool      `json:"approved"`
	IPHash    string    `json:"-"`
	IsDefault bool      `json:"is_default,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewInput carries the submitted fields of a new review before
// sanitization.
type ReviewInput struct {
	Name    string
	Rating  int
	Service string
	Text    string
}

// ReviewStats aggregates the review table for the public stats endpoint and
// the admin dashboard.
type ReviewStats struct {
	Total     int     `json:"total"`
	Approved  int     `json:"approved"`
	Pending   int     `json:"pending"`
	AvgRating float64 `json:"avgRating"`
}
