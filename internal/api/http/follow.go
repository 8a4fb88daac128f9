package http

import (
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type FollowHandler struct {
	UserService *service.UserService
}

// HandleFollow starts following a user.
//
//	@Summary		Follow a user
//	@Description	Makes the caller follow the given user. Idempotent.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User id to follow"
//	@Success		204	"Following"
//	@Failure		401	{object}	apisdk.APIError	"Invalid or missing token"
//	@Failure		404	{object}	apisdk.APIError	"User not found"
//	@Router			/v1/users/{id}/follow [post].
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromCtx(r.Context())
	if userID == "" {
		apisdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.UserService.Follow(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUnfollow stops following a user.
//
//	@Summary		Unfollow a user
//	@Description	Removes the caller's follow of the given user, if present.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User id to unfollow"
//	@Success		204	"No longer following"
//	@Failure		401	{object}	apisdk.APIError	"Invalid or missing token"
//	@Router			/v1/users/{id}/follow [delete].
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromCtx(r.Context())
	if userID == "" {
		apisdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.UserService.Unfollow(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
