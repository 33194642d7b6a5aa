package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashIP anonymizes a client IP before it is used as a throttle key or
// stored alongside a review. The salt is optional configuration; an empty
// salt degrades to an unsalted hash.
func hashIP(salt, ip string) string {
	if ip == "" {
		return "unknown"
	}
	sum := sha256.Sum256([]byte(salt + ":" + ip))
	return hex.EncodeToString(sum[:])[:32]
}
