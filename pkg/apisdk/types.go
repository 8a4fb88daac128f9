package apisdk

import "time"

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned from a successful login.
type TokenResponse struct {
	// AccessToken is the signed session token used to authenticate requests
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`
}

// UserResponse is the public identity projection. It never includes the
// password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	RoleID    *string   `json:"role_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorResponse is the author projection embedded in posts and comments.
type AuthorResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// PostResponse is a single post with its author attached.
type PostResponse struct {
	ID        string          `json:"id"`
	Body      *string         `json:"body,omitempty"`
	MediaURL  string          `json:"media_url"`
	CreatedAt time.Time       `json:"created_at"`
	Author    *AuthorResponse `json:"author,omitempty"`
}

// CommentResponse is a single comment with its author attached.
type CommentResponse struct {
	ID        string          `json:"id"`
	PostID    string          `json:"post_id"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
	Author    *AuthorResponse `json:"author,omitempty"`
}

// FeedResponse is one page of the home feed.
type FeedResponse struct {
	Data       []PostResponse `json:"data"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
	NextOffset int            `json:"next_offset"`
}

// CommentsPage is one page of a post's comments.
type CommentsPage struct {
	Data       []CommentResponse `json:"data"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
	NextOffset int               `json:"next_offset"`
}

// PostDetailResponse is a post plus one page of its comments.
type PostDetailResponse struct {
	Post     PostResponse `json:"post"`
	Comments CommentsPage `json:"comments"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
