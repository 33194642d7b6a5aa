package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	pkghttp "github.com/horizonit/backend/pkg/http"
	"github.com/horizonit/backend/pkg/sanitize"
)

// LeadServiceInterface defines the interface for lead business logic.
type LeadServiceInterface interface {
	Submit(ctx context.Context, input models.LeadInput) (*models.Lead, error)
	List(ctx context.Context, status string) ([]*models.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Lead, error)
	Delete(ctx context.Context, id int64) error
}

// ContactHandler handles the public contact form endpoint.
type ContactHandler struct {
	service LeadServiceInterface
}

func NewContactHandler(service LeadServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactRequest represents the request body for a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=80"`
	Email   string `json:"email" validate:"required,email"`
	Service string `json:"service" validate:"required,min=3,max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// ContactResponse confirms a stored lead.
type ContactResponse struct {
	Message string `json:"message"`
	LeadID  int64  `json:"leadId"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	// Length limits apply to what gets stored, so strip markup first.
	req.Name = sanitize.Clean(req.Name)
	req.Email = sanitize.Clean(req.Email)
	req.Service = sanitize.Clean(req.Service)
	req.Message = sanitize.Clean(req.Message)

	if details := ValidationDetails(req); details != nil {
		pkghttp.WriteValidationError(w, details)
		return
	}

	lead, err := h.service.Submit(r.Context(), models.LeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Service: req.Service,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			pkghttp.WriteError(w, http.StatusServiceUnavailable, "storage_unavailable", "Le formulaire de contact est temporairement indisponible.")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, ContactResponse{
		Message: "Demande enregistrée, je reviens vers toi rapidement.",
		LeadID:  lead.ID,
	})
}
