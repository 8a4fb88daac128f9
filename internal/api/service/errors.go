package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredential covers both "no such email" and "wrong password"
	// at login so responses cannot be used for account enumeration. It is
	// also returned for malformed passwords at registration.
	ErrInvalidCredential = errors.New("invalid_credential")

	// ErrEmailTaken and ErrUsernameTaken are the two Conflict kinds at
	// registration. Both the pre-insert checks and the store's unique
	// constraints surface as these.
	ErrEmailTaken    = errors.New("email_taken")
	ErrUsernameTaken = errors.New("username_taken")

	// ErrInvalidToken covers missing, malformed, expired and wrongly
	// signed session tokens.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrUserNotFound means the token verified but the identity it claims
	// no longer exists.
	ErrUserNotFound = errors.New("user_not_found")

	ErrPostNotFound = errors.New("post_not_found")

	// ErrUnsupportedMedia and ErrMediaTooLarge reject bad uploads before
	// anything touches the bucket.
	ErrUnsupportedMedia = errors.New("unsupported_media")
	ErrMediaTooLarge    = errors.New("media_too_large")
)

// ValidationError carries field-level failures from request validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}
