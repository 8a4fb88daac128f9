package http

import (
	"net/http"
	"strconv"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type PostDetailHandler struct {
	PostService *service.PostService
}

// ServeHTTP returns a post with one page of its comments.
//
//	@Summary		Get post detail
//	@Description	Returns the post, its author, and a page of comments ordered oldest first.
//	@Tags			Posts
//	@Produce		json
//	@Param			id				path		string						true	"Post id"
//	@Param			comments_limit	query		int							false	"Comments per page (1-50, default 20)"
//	@Param			comments_offset	query		int							false	"Comments pagination offset"
//	@Success		200				{object}	apisdk.PostDetailResponse	"post, comments"
//	@Failure		404				{object}	apisdk.APIError				"Post not found"
//	@Router			/v1/posts/{id} [get].
func (h *PostDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")

	q := r.URL.Query()
	limit := service.DefaultCommentsLimit
	if v := q.Get("comments_limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	offset, _ := strconv.Atoi(q.Get("comments_offset"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	}
	if limit > service.MaxCommentsLimit {
		limit = service.MaxCommentsLimit
	}

	post, comments, err := h.PostService.PostDetail(r.Context(), postID, limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	data := make([]apisdk.CommentResponse, 0, len(comments))
	for _, c := range comments {
		data = append(data, toCommentResponse(c))
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.PostDetailResponse{
		Post: toPostResponse(post),
		Comments: apisdk.CommentsPage{
			Data:       data,
			Limit:      limit,
			Offset:     offset,
			NextOffset: offset + limit,
		},
	})
}
