package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/horizonit/backend/internal/auth"
	"github.com/horizonit/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"no token", "Bearer ", "", true},
		{"bare token", "abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.ExtractBearer(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	var sawClaims *models.TokenClaims
	handler := auth.RequireAdmin(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawClaims = auth.GetClaimsFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no header returns 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/admin-reviews", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token returns 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin-reviews", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes with claims in context", func(t *testing.T) {
		token, err := tm.Issue()
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin-reviews", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, sawClaims)
		assert.True(t, sawClaims.Admin)
	})
}
