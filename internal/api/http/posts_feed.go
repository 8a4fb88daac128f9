package http

import (
	"net/http"
	"strconv"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type FeedHandler struct {
	PostService *service.PostService
}

// ServeHTTP returns one page of the home feed.
//
//	@Summary		Get the home feed
//	@Description	Returns posts by the caller and everyone they follow, newest first, ten per page.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			offset	query		int					false	"Pagination offset"
//	@Success		200		{object}	apisdk.FeedResponse	"data, limit, offset, next_offset"
//	@Failure		401		{object}	apisdk.APIError		"Invalid or missing token"
//	@Router			/v1/posts/feed [get].
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		apisdk.ErrInvalidToken.WriteError(w)
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	posts, err := h.PostService.Feed(ctx, userID, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	data := make([]apisdk.PostResponse, 0, len(posts))
	for _, p := range posts {
		data = append(data, toPostResponse(p))
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.FeedResponse{
		Data:       data,
		Limit:      service.FeedPageSize,
		Offset:     offset,
		NextOffset: offset + service.FeedPageSize,
	})
}
