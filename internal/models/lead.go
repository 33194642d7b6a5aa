package models

import "time"

// Lead statuses. A lead starts as "new" and is moved through the pipeline by
// an admin; leads are never exposed publicly.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusDone      = "done"
)

// Lead is a contact-form submission from a prospective customer.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadInput carries the submitted fields of a new lead before sanitization.
type LeadInput struct {
	Name    string
	Email   string
	Service string
	Message string
}

// ValidLeadStatus reports whether s is one of the known pipeline statuses.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusDone:
		return true
	}
	return false
}

// LeadStats counts leads per pipeline status for the admin dashboard.
type LeadStats struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Contacted int `json:"contacted"`
	Done      int `json:"done"`
}
