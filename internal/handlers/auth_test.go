package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/horizonit/backend/internal/handlers"
	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestLogin_Success(t *testing.T) {
	mockAuth := &handlers.MockAuthService{
		LoginFunc: func(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error) {
			return &services.AuthResponse{Token: "token_123", ExpiresIn: 86400}, nil
		},
	}

	handler := handlers.NewAuthHandler(mockAuth, nil)
	req := handlers.NewTestRequest(t, "POST", "/api/auth", handlers.LoginRequest{
		Password: "admin-password",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	var resp services.AuthResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "token_123", resp.Token)
	assert.Equal(t, int64(86400), resp.ExpiresIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockAuth := &handlers.MockAuthService{
		LoginFunc: func(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}

	handler := handlers.NewAuthHandler(mockAuth, nil)
	req := handlers.NewTestRequest(t, "POST", "/api/auth", handlers.LoginRequest{
		Password: "wrong",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestLogin_LockedOut(t *testing.T) {
	mockAuth := &handlers.MockAuthService{
		LoginFunc: func(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error) {
			return nil, &models.RateLimitError{RetryAfter: 10 * time.Minute}
		},
	}

	handler := handlers.NewAuthHandler(mockAuth, nil)
	req := handlers.NewTestRequest(t, "POST", "/api/auth", handlers.LoginRequest{
		Password: "whatever",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 429, "rate_limit_exceeded")
	assert.Equal(t, "600", w.Header().Get("Retry-After"))
}

func TestLogin_MissingPassword(t *testing.T) {
	called := false
	mockAuth := &handlers.MockAuthService{
		LoginFunc: func(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error) {
			called = true
			return nil, nil
		},
	}

	handler := handlers.NewAuthHandler(mockAuth, nil)
	req := handlers.NewTestRequest(t, "POST", "/api/auth", handlers.LoginRequest{})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 400, "invalid_input")
	assert.False(t, called, "service must not be called for invalid input")
}

func TestLogin_MalformedOTP(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, nil)
	req := handlers.NewTestRequest(t, "POST", "/api/auth", handlers.LoginRequest{
		Password: "admin-password",
		OTP:      "12ab56",
	})

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 400, "invalid_input")
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler := handlers.NewAuthHandler(&handlers.MockAuthService{}, nil)
	req := httptest.NewRequest("POST", "/api/auth", strings.NewReader("{not json"))

	w := httptest.NewRecorder()
	handler.Login(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}
