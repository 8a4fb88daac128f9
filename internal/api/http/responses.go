package http

import (
	"errors"
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/slogx"
)

func toUserResponse(u domain.User) apisdk.UserResponse {
	return apisdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
	}
}

func toAuthorResponse(a *domain.Author) *apisdk.AuthorResponse {
	if a == nil {
		return nil
	}
	return &apisdk.AuthorResponse{
		ID:        a.ID,
		Username:  a.Username,
		AvatarURL: a.AvatarURL,
	}
}

func toPostResponse(p domain.Post) apisdk.PostResponse {
	return apisdk.PostResponse{
		ID:        p.ID,
		Body:      p.Body,
		MediaURL:  p.MediaURL,
		CreatedAt: p.CreatedAt,
		Author:    toAuthorResponse(p.Author),
	}
}

func toCommentResponse(c domain.Comment) apisdk.CommentResponse {
	return apisdk.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Author:    toAuthorResponse(c.Author),
	}
}

// writeServiceError maps service failure kinds onto wire errors. Anything
// unclassified is logged and reported as a generic server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		apisdk.NewValidationError(vErr.Fields).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredential):
		apisdk.ErrInvalidCredential.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		apisdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrUsernameTaken):
		apisdk.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		apisdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		apisdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrPostNotFound):
		apisdk.ErrPostNotFound.WriteError(w)
	case errors.Is(err, service.ErrUnsupportedMedia):
		apisdk.ErrUnsupportedMedia.WriteError(w)
	case errors.Is(err, service.ErrMediaTooLarge):
		apisdk.ErrPayloadTooLarge.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		apisdk.ErrServerError.WriteError(w)
	}
}
