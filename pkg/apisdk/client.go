// Package apisdk holds the wire types of the pixelfeed API plus a small
// client for integration tests and other Go consumers.
package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// SDKClient is a client for the pixelfeed API service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client against the given base URL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account and returns its identity projection.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var user UserResponse
	if err := c.postJSON(ctx, "/v1/auth/register", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a session token.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/login", "", req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Me returns the identity behind the bearer token.
func (c *SDKClient) Me(ctx context.Context, accessToken string) (*UserResponse, error) {
	var user UserResponse
	if err := c.getJSON(ctx, "/v1/me", accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Feed fetches one page of the home feed.
func (c *SDKClient) Feed(ctx context.Context, accessToken string, offset int) (*FeedResponse, error) {
	var feed FeedResponse
	path := fmt.Sprintf("/v1/posts/feed?offset=%d", offset)
	if err := c.getJSON(ctx, path, accessToken, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// PostDetail fetches a post with one page of comments.
func (c *SDKClient) PostDetail(ctx context.Context, postID string, commentsLimit, commentsOffset int) (*PostDetailResponse, error) {
	var detail PostDetailResponse
	path := fmt.Sprintf("/v1/posts/%s?comments_limit=%d&comments_offset=%d",
		postID, commentsLimit, commentsOffset)
	if err := c.getJSON(ctx, path, "", &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreatePost uploads an image with an optional caption as a multipart form.
func (c *SDKClient) CreatePost(
	ctx context.Context,
	accessToken, filename, contentType string,
	data []byte,
	body string,
) (*PostResponse, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if body != "" {
		if err := form.WriteField("body", body); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/posts", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var post PostResponse
	if err := c.do(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment posts a comment on the given post.
func (c *SDKClient) AddComment(ctx context.Context, accessToken, postID, body string) (*CommentResponse, error) {
	var comment CommentResponse
	path := fmt.Sprintf("/v1/posts/%s/comments", postID)
	if err := c.postJSON(ctx, path, accessToken, map[string]string{"body": body}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Follow starts following the given user.
func (c *SDKClient) Follow(ctx context.Context, accessToken, userID string) error {
	path := fmt.Sprintf("/v1/users/%s/follow", userID)
	return c.postJSON(ctx, path, accessToken, struct{}{}, nil)
}

// Unfollow stops following the given user.
func (c *SDKClient) Unfollow(ctx context.Context, accessToken, userID string) error {
	path := fmt.Sprintf("%s/v1/users/%s/follow", c.BaseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, nil)
}

// Livez reports whether the service process is up.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.getJSON(ctx, "/livez", "", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Readyz reports whether the service and its dependencies are healthy.
func (c *SDKClient) Readyz(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.getJSON(ctx, "/readyz", "", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *SDKClient) postJSON(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("apisdk: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *SDKClient) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *SDKClient) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = ErrorCodeServerError
			apiErr.Description = fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
