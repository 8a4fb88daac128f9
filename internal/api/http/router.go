package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store"
	"github.com/pixelfeedhq/pixelfeed/pkg/httpx"
	"github.com/pixelfeedhq/pixelfeed/pkg/jwtx"
	"github.com/pixelfeedhq/pixelfeed/pkg/slogx"

	_ "github.com/pixelfeedhq/pixelfeed/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	PostService *service.PostService
	UserService *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	allowedOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Global middleware chain: request logging first, then CORS.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(allowedOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPosts()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pixelfeed API
//	@version		0.1.0
//	@description	Photo-sharing backend: registration and login with bearer session
//	@description	tokens, image posts, a follow-based home feed and paginated comments.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/auth/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /v1/auth/login", &LoginHandler{AuthService: r.AuthService})

	// /v1/me resolves the token itself (401 vs 404), so no authn middleware.
	r.Mux.Handle("GET /v1/me", &MeHandler{AuthService: r.AuthService})
}

func (r *Router) registerPosts() {
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("POST /v1/posts",
		httpx.Chain(&CreatePostHandler{PostService: r.PostService}, authn))
	r.Mux.Handle("GET /v1/posts/feed",
		httpx.Chain(&FeedHandler{PostService: r.PostService}, authn))
	r.Mux.Handle("POST /v1/posts/{id}/comments",
		httpx.Chain(&AddCommentHandler{PostService: r.PostService}, authn))

	// Post detail is public, matching the original surface.
	r.Mux.Handle("GET /v1/posts/{id}", &PostDetailHandler{PostService: r.PostService})
}

func (r *Router) registerUsers() {
	authn := httpx.AuthnMiddleware(r.verifier)
	follow := &FollowHandler{UserService: r.UserService}

	r.Mux.Handle("POST /v1/users/{id}/follow",
		httpx.Chain(http.HandlerFunc(follow.HandleFollow), authn))
	r.Mux.Handle("DELETE /v1/users/{id}/follow",
		httpx.Chain(http.HandlerFunc(follow.HandleUnfollow), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
