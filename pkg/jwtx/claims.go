package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens when the
// deployment does not configure one.
const DefaultAccessTokenTTL = 60 * time.Minute

// Claims are the session-token claims used across the service. The subject
// is the user id; everything else is standard registered claims plus the
// username for convenience.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user
	Username string `json:"username,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a session token
// issued at now and expiring at now+ttl.
func NewAccessClaims(subject, username, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
	}
}

// NewJTI returns a fresh random identifier for the "jti" claim. A random
// UUIDv4 carries 122 bits of entropy, plenty for global uniqueness per
// issuance.
func NewJTI() string {
	return uuid.NewString()
}
