package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelfeedhq/pixelfeed/pkg/apisdk"
)

// TestRegisterLoginMe exercises the full credential lifecycle: register an
// account, log in, and resolve the identity behind the token.
func TestRegisterLoginMe(t *testing.T) {
	baseURL := setupAPIStack(t)
	client := apisdk.NewSDKClient(baseURL)

	user := registerUser(t, client, "alice")
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "alice", user.Username)

	token := loginUser(t, client, "alice")

	me, err := client.Me(t.Context(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)
	require.Equal(t, user.Email, me.Email)
}

// TestRegisterConflicts verifies duplicate email and username registrations
// are rejected with 409.
func TestRegisterConflicts(t *testing.T) {
	baseURL := setupAPIStack(t)
	client := apisdk.NewSDKClient(baseURL)

	registerUser(t, client, "bob")

	_, err := client.Register(t.Context(), apisdk.RegisterRequest{
		Email:    "bob@example.com",
		Username: "differentbob",
		Password: defaultPassword,
	})
	assertAPIError(t, err, http.StatusConflict, apisdk.ErrorCodeConflict)

	_, err = client.Register(t.Context(), apisdk.RegisterRequest{
		Email:    "bob2@example.com",
		Username: "bob",
		Password: defaultPassword,
	})
	assertAPIError(t, err, http.StatusConflict, apisdk.ErrorCodeConflict)
}

// TestRegisterValidation verifies malformed registrations return 422 with
// field details.
func TestRegisterValidation(t *testing.T) {
	baseURL := setupAPIStack(t)
	client := apisdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), apisdk.RegisterRequest{
		Email:    "not-an-email",
		Username: "carol",
		Password: defaultPassword,
	})
	assertAPIError(t, err, http.StatusUnprocessableEntity, apisdk.ErrorCodeValidation)

	_, err = client.Register(t.Context(), apisdk.RegisterRequest{
		Email:    "carol@example.com",
		Username: "carol",
		Password: "short",
	})
	assertAPIError(t, err, http.StatusUnprocessableEntity, apisdk.ErrorCodeValidation)

	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Details, "password")
}

// TestLoginFailuresAreUniform verifies unknown email and wrong password
// produce the same 401 response.
func TestLoginFailuresAreUniform(t *testing.T) {
	baseURL := setupAPIStack(t)
	client := apisdk.NewSDKClient(baseURL)

	registerUser(t, client, "dave")

	_, unknownErr := client.Login(t.Context(), apisdk.LoginRequest{
		Email:    "nobody@example.com",
		Password: defaultPassword,
	})
	assertAPIError(t, unknownErr, http.StatusUnauthorized, apisdk.ErrorCodeInvalidCredential)

	_, wrongErr := client.Login(t.Context(), apisdk.LoginRequest{
		Email:    "dave@example.com",
		Password: "WrongPassword1",
	})
	assertAPIError(t, wrongErr, http.StatusUnauthorized, apisdk.ErrorCodeInvalidCredential)

	require.Equal(t, unknownErr.Error(), wrongErr.Error(),
		"failures must not reveal whether the email exists")
}

// TestMeRejectsBadTokens verifies /v1/me returns 401 for missing, garbage
// and tampered tokens.
func TestMeRejectsBadTokens(t *testing.T) {
	baseURL := setupAPIStack(t)
	client := apisdk.NewSDKClient(baseURL)

	registerUser(t, client, "erin")
	token := loginUser(t, client, "erin")

	_, err := client.Me(t.Context(), "not-a-token")
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodeInvalidToken)

	_, err = client.Me(t.Context(), token[:len(token)-4])
	assertAPIError(t, err, http.StatusUnauthorized, apisdk.ErrorCodeInvalidToken)
}
