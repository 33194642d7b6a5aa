package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/internal/services"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

// AuthServiceInterface defines the interface for admin authentication.
type AuthServiceInterface interface {
	Login(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error)
}

// AuthHandler handles the admin login endpoint.
type AuthHandler struct {
	service  AuthServiceInterface
	ipConfig *pkghttp.IPConfig
}

func NewAuthHandler(service AuthServiceInterface, ipConfig *pkghttp.IPConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		ipConfig: ipConfig,
	}
}

// LoginRequest represents the request body for admin login. The otp field is
// required only when a TOTP second factor is configured.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
	OTP      string `json:"otp" validate:"omitempty,len=6,numeric"`
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if details := ValidationDetails(req); details != nil {
		pkghttp.WriteValidationError(w, details)
		return
	}

	ip := pkghttp.ExtractClientIP(r, h.ipConfig)

	authResp, err := h.service.Login(r.Context(), req.Password, req.OTP, ip)
	if err != nil {
		var rateErr *models.RateLimitError
		switch {
		case errors.As(err, &rateErr):
			pkghttp.WriteTooManyRequests(w, "Too many failed login attempts. Please try again later.", rateErr.RetryAfter)
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "Invalid credentials")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, authResp)
}
