package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers tampered, malformed, expired and wrongly-signed
// tokens alike. Verification failures are deliberately not distinguished to
// the caller.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Verifier validates a session token and gives you back the claims if it's
// legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Codec issues and verifies HMAC-SHA256 signed session tokens with a
// shared symmetric secret. The algorithm is fixed per deployment; tokens
// claiming any other algorithm fail verification.
//
// The clock is injected so verification is pure given a fixed now. Outside
// of tests the codec reads time.Now.
type HS256Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option mutates codec construction.
type Option func(*HS256Codec)

// WithClock overrides the codec's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *HS256Codec) { c.now = now }
}

// NewHS256 builds a codec from the shared secret, issuer claim and token
// TTL. A non-positive ttl falls back to DefaultAccessTokenTTL.
func NewHS256(secret []byte, issuer string, ttl time.Duration, opts ...Option) *HS256Codec {
	c := &HS256Codec{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultAccessTokenTTL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured token lifetime.
func (c *HS256Codec) TTL() time.Duration { return c.ttl }

// Issue signs a session token for the subject (user id), valid from now
// until now+TTL, with a fresh jti.
func (c *HS256Codec) Issue(subject, username string) (string, error) {
	claims := NewAccessClaims(subject, username, c.issuer, c.ttl, c.now().UTC())
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and validity window of the token. All
// failures collapse into ErrInvalidToken; the underlying cause stays
// wrapped for logging.
func (c *HS256Codec) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
