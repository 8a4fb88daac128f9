package http

import (
	"encoding/json"
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles account registration.
//
//	@Summary		Register a new account
//	@Description	Creates a user from email, username and password and returns the identity projection.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.RegisterRequest	true	"Registration payload"
//	@Success		201		{object}	apisdk.UserResponse		"Created identity (no password hash)"
//	@Failure		409		{object}	apisdk.APIError			"Email or username already taken"
//	@Failure		422		{object}	apisdk.APIError			"Validation failed"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req apisdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.NewValidationError(map[string]string{"body": "invalid JSON"}).WriteError(w)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}
