package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/horizonit/backend/internal/auth"
	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/internal/services"
	pkghttp "github.com/horizonit/backend/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAdminContext adds admin claims to the request context for testing
// endpoints behind the token middleware
func WithAdminContext(req *http.Request) *http.Request {
	claims := &models.TokenClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "admin",
		},
	}
	ctx := context.WithValue(req.Context(), auth.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc func(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, password, otpCode, ip string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, password, otpCode, ip)
}

// MockReviewService implements ReviewServiceInterface for testing
type MockReviewService struct {
	ListApprovedFunc func(ctx context.Context) ([]*models.Review, error)
	ListAllFunc      func(ctx context.Context) ([]*models.Review, error)
	SubmitFunc       func(ctx context.Context, input models.ReviewInput, ip string) (*models.Review, error)
	ApproveFunc      func(ctx context.Context, id int64) error
	RejectFunc       func(ctx context.Context, id int64) error
	RemoveFunc       func(ctx context.Context, id int64) error
}

func (m *MockReviewService) ListApproved(ctx context.Context) ([]*models.Review, error) {
	if m.ListApprovedFunc == nil {
		return nil, nil
	}
	return m.ListApprovedFunc(ctx)
}

func (m *MockReviewService) ListAll(ctx context.Context) ([]*models.Review, error) {
	if m.ListAllFunc == nil {
		return nil, nil
	}
	return m.ListAllFunc(ctx)
}

func (m *MockReviewService) Submit(ctx context.Context, input models.ReviewInput, ip string) (*models.Review, error) {
	if m.SubmitFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.SubmitFunc(ctx, input, ip)
}

func (m *MockReviewService) Approve(ctx context.Context, id int64) error {
	if m.ApproveFunc == nil {
		return nil
	}
	return m.ApproveFunc(ctx, id)
}

func (m *MockReviewService) Reject(ctx context.Context, id int64) error {
	if m.RejectFunc == nil {
		return nil
	}
	return m.RejectFunc(ctx, id)
}

func (m *MockReviewService) Remove(ctx context.Context, id int64) error {
	if m.RemoveFunc == nil {
		return nil
	}
	return m.RemoveFunc(ctx, id)
}

// MockLeadService implements LeadServiceInterface for testing
type MockLeadService struct {
	SubmitFunc       func(ctx context.Context, input models.LeadInput) (*models.Lead, error)
	ListFunc         func(ctx context.Context, status string) ([]*models.Lead, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status string) (*models.Lead, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockLeadService) Submit(ctx context.Context, input models.LeadInput) (*models.Lead, error) {
	if m.SubmitFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.SubmitFunc(ctx, input)
}

func (m *MockLeadService) List(ctx context.Context, status string) ([]*models.Lead, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx, status)
}

func (m *MockLeadService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Lead, error) {
	if m.UpdateStatusFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *MockLeadService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

// MockStatsService implements StatsServiceInterface for testing
type MockStatsService struct {
	PublicFunc     func(ctx context.Context) *models.PublicStats
	DashboardFunc  func(ctx context.Context) (*models.AdminDashboard, error)
	UpdateSiteFunc func(ctx context.Context, update *models.SiteStatsUpdate) (*models.SiteStats, error)
}

func (m *MockStatsService) Public(ctx context.Context) *models.PublicStats {
	if m.PublicFunc == nil {
		stats := models.DefaultStats
		return &stats
	}
	return m.PublicFunc(ctx)
}

func (m *MockStatsService) Dashboard(ctx context.Context) (*models.AdminDashboard, error) {
	if m.DashboardFunc == nil {
		return &models.AdminDashboard{}, nil
	}
	return m.DashboardFunc(ctx)
}

func (m *MockStatsService) UpdateSite(ctx context.Context, update *models.SiteStatsUpdate) (*models.SiteStats, error) {
	if m.UpdateSiteFunc == nil {
		return nil, models.ErrStorageUnavailable
	}
	return m.UpdateSiteFunc(ctx, update)
}
