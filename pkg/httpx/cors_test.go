package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const corsOrigin = "https://app.pixelfeed.dev"

func corsHandler(reached *bool) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
	return CORSMiddleware([]string{corsOrigin})(inner)
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("allowed origin is echoed with credentials", func(t *testing.T) {
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/posts/feed", nil)
		req.Header.Set("Origin", corsOrigin)

		corsHandler(&reached).ServeHTTP(rec, req)

		require.True(t, reached)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, corsOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/posts/feed", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		corsHandler(&reached).ServeHTTP(rec, req)

		// The request itself still runs; the browser enforces the denial.
		require.True(t, reached)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight short-circuits before the handler", func(t *testing.T) {
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/posts", nil)
		req.Header.Set("Origin", corsOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		corsHandler(&reached).ServeHTTP(rec, req)

		require.False(t, reached)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, corsOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("preflight from unknown origin carries no grants", func(t *testing.T) {
		var reached bool
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/posts", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		corsHandler(&reached).ServeHTTP(rec, req)

		require.False(t, reached)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
