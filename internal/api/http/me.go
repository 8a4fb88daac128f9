package http

import (
	"net/http"
	"strings"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type MeHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP resolves the bearer token to its identity. It runs the full
// resolution pipeline itself rather than sitting behind the authn
// middleware, so a valid token whose user was deleted gets a 404 instead
// of a blanket 401.
//
//	@Summary		Get the authenticated identity
//	@Description	Verifies the bearer token and returns the identity it refers to.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apisdk.UserResponse	"Identity projection"
//	@Failure		401	{object}	apisdk.APIError		"Invalid or missing token"
//	@Failure		404	{object}	apisdk.APIError		"Token valid but user no longer exists"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		apisdk.ErrInvalidToken.WriteError(w)
		return
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

	user, err := h.AuthService.ResolveIdentity(r.Context(), raw)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
