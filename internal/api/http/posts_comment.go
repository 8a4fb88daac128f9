package http

import (
	"encoding/json"
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type commentRequest struct {
	Body string `json:"body"`
}

type AddCommentHandler struct {
	PostService *service.PostService
}

// ServeHTTP adds a comment to a post.
//
//	@Summary		Comment on a post
//	@Description	Adds a comment authored by the caller to the given post.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Post id"
//	@Param			request	body		commentRequest			true	"Comment payload"
//	@Success		201		{object}	apisdk.CommentResponse	"Created comment"
//	@Failure		401		{object}	apisdk.APIError			"Invalid or missing token"
//	@Failure		404		{object}	apisdk.APIError			"Post not found"
//	@Router			/v1/posts/{id}/comments [post].
func (h *AddCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		apisdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.NewValidationError(map[string]string{"body": "invalid JSON"}).WriteError(w)
		return
	}

	comment, err := h.PostService.AddComment(ctx, r.PathValue("id"), userID, req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCommentResponse(comment))
}
