package http

import (
	"encoding/json"
	"net/http"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a bearer session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.LoginRequest		true	"Login payload"
//	@Success		200		{object}	apisdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		401		{object}	apisdk.APIError			"Invalid email or password"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req apisdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apisdk.NewValidationError(map[string]string{"body": "invalid JSON"}).WriteError(w)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.AuthService.Codec.TTL().Seconds()),
	})
}
