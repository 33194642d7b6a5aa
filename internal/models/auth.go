package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims carried by an admin credential.
type TokenClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// LoginAttemptRecord is the per-IP brute-force bookkeeping behind the login
// throttle. Count is the number of failures since FirstAttempt; a non-nil
// LockedUntil means the IP is locked out until that instant.
type LoginAttemptRecord struct {
	Count        int
	FirstAttempt time.Time
	LockedUntil  *time.Time
}

// Locked reports whether the record is under an active lockout at now.
func (r *LoginAttemptRecord) Locked(now time.Time) bool {
	return r.LockedUntil != nil && now.Before(*r.LockedUntil)
}
