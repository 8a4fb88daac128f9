package apisdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeInvalidCredential = "invalid_credential"
	ErrorCodeConflict          = "conflict"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeUserNotFound      = "user_not_found"
	ErrorCodePostNotFound      = "post_not_found"
	ErrorCodeUnsupportedMedia  = "unsupported_media_type"
	ErrorCodePayloadTooLarge   = "payload_too_large"
	ErrorCodeServerError       = "server_error"
)

// APIError is the wire shape of every error response. It implements the
// error interface so it serves both the server (writing responses) and the
// SDK client (representing failures).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details carries field-specific validation errors, when present
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// WithDetails returns a copy of the error carrying field-level details.
func (e *APIError) WithDetails(details map[string]string) *APIError {
	clone := *e
	clone.Details = details
	return &clone
}

var (
	// ErrInvalidCredential is returned for a wrong email/password pair at
	// login. The message never says which half was wrong.
	ErrInvalidCredential = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredential,
		Description: "invalid email or password",
	}

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "email is already registered",
	}

	// ErrUsernameTaken is returned when registering with a username that is
	// already in use.
	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "username is already taken",
	}

	// ErrInvalidToken covers missing, malformed, expired and wrongly signed
	// bearer tokens.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid or expired token",
	}

	// ErrUserNotFound is returned when a valid token references an identity
	// that no longer exists.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "user not found",
	}

	// ErrPostNotFound is returned for an unknown post id.
	ErrPostNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodePostNotFound,
		Description: "post not found",
	}

	// ErrUnsupportedMedia is returned when an upload is not a jpeg or png.
	ErrUnsupportedMedia = &APIError{
		StatusCode:  http.StatusUnsupportedMediaType,
		Code:        ErrorCodeUnsupportedMedia,
		Description: "file must be a jpg, jpeg or png image",
	}

	// ErrPayloadTooLarge is returned when an upload exceeds the size cap.
	ErrPayloadTooLarge = &APIError{
		StatusCode:  http.StatusRequestEntityTooLarge,
		Code:        ErrorCodePayloadTooLarge,
		Description: "file exceeds the maximum allowed size",
	}

	// ErrServerError is the generic failure response; details stay in the
	// server logs.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewValidationError builds a 422 response from field-level failures.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeValidation,
		Description: "request validation failed",
		Details:     details,
	}
}
