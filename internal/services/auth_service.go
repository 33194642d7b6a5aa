package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/horizonit/backend/internal/auth"
	"github.com/horizonit/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer abstracts the token manager for testing.
type TokenIssuer interface {
	Issue() (string, error)
	Expiry() time.Duration
}

// AuthResponse is returned on a successful admin login.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// AuthService authenticates the single admin credential behind the login
// throttle and issues admin tokens. The configured password is bcrypt-hashed
// at startup so the plaintext never sits in memory longer than Load.
type AuthService struct {
	passwordHash []byte
	totpSecret   string
	tokens       TokenIssuer
	throttle     *LoginThrottle
	ipSalt       string
	logger       *slog.Logger
}

func NewAuthService(adminPassword, totpSecret string, tokens TokenIssuer, throttle *LoginThrottle, ipSalt string, logger *slog.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AuthService{
		passwordHash: hash,
		totpSecret:   totpSecret,
		tokens:       tokens,
		throttle:     throttle,
		ipSalt:       ipSalt,
		logger:       logger,
	}, nil
}

// Login checks the admin password (and TOTP code when a second factor is
// configured) from the given client IP. The throttle is consulted first: a
// locked IP fails immediately even with the correct password.
func (s *AuthService) Login(ctx context.Context, password, otpCode, ip string) (*AuthResponse, error) {
	key := hashIP(s.ipSalt, ip)

	if err := s.throttle.Allow(ctx, key); err != nil {
		s.logger.Warn("login attempt while locked out", slog.String("key", key))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.throttle.RecordFailure(ctx, key)
		s.logger.Warn("failed admin login", slog.String("key", key))
		return nil, models.ErrUnauthorized
	}

	if s.totpSecret != "" {
		valid, err := auth.ValidateTOTP(s.totpSecret, otpCode)
		if err != nil || !valid {
			s.throttle.RecordFailure(ctx, key)
			s.logger.Warn("failed admin TOTP check", slog.String("key", key))
			return nil, models.ErrUnauthorized
		}
	}

	s.throttle.Reset(ctx, key)

	token, err := s.tokens.Issue()
	if err != nil {
		s.logger.Error("failed to issue admin token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("admin login succeeded")

	return &AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.Expiry().Seconds()),
	}, nil
}
