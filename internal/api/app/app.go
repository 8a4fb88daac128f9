package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
	httpapi "github.com/pixelfeedhq/pixelfeed/internal/api/http"
	"github.com/pixelfeedhq/pixelfeed/internal/api/media"
	"github.com/pixelfeedhq/pixelfeed/internal/api/service"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store/drivers/sqlite"
	"github.com/pixelfeedhq/pixelfeed/pkg/idx"
	"github.com/pixelfeedhq/pixelfeed/pkg/jwtx"
	"github.com/pixelfeedhq/pixelfeed/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	// defaultRoleName is the role granted to every new account.
	defaultRoleName = "user"
)

// Application encapsulates the API service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	media         media.Store
	codec         *jwtx.HS256Codec
	defaultRoleID string

	authService *service.AuthService
	postService *service.PostService
	userService *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("API_JWT_SECRET is required")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "pixelfeed-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initMedia(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.codec = jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer, cfg.TokenTTL)

	roleID, err := app.ensureDefaultRole(context.Background())
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to ensure default role: %w", err)
	}
	app.defaultRoleID = roleID

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("api service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initMedia initializes the S3 media store for post images
func (app *Application) initMedia() error {
	mediaStore, err := media.NewS3Store(context.Background(), media.S3Config{
		Region:        app.cfg.S3Region,
		Endpoint:      app.cfg.S3Endpoint,
		AccessKey:     app.cfg.S3AccessKey,
		SecretKey:     app.cfg.S3SecretKey,
		Bucket:        app.cfg.S3Bucket,
		PublicBaseURL: app.cfg.MediaBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}
	app.media = mediaStore
	return nil
}

// ensureDefaultRole makes sure the role assigned to new accounts exists,
// creating it on first boot.
func (app *Application) ensureDefaultRole(ctx context.Context) (string, error) {
	role, err := app.db.Roles().GetRoleByName(ctx, defaultRoleName)
	if err == nil {
		return role.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	role = domain.Role{ID: idx.New().String(), Name: defaultRoleName}
	if err := app.db.Roles().CreateRole(ctx, role); err != nil {
		// Lost a race against another instance booting on the same database.
		if errors.Is(err, store.ErrAlreadyExists) {
			role, err = app.db.Roles().GetRoleByName(ctx, defaultRoleName)
			return role.ID, err
		}
		return "", err
	}

	app.logger.Info("default role created", "role_id", role.ID, "name", role.Name)
	return role.ID, nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:         app.db,
		Codec:         app.codec,
		DefaultRoleID: app.defaultRoleID,
	}
	app.postService = &service.PostService{
		Store: app.db,
		Media: app.media,
	}
	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.cfg.CORSOrigins,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.PostService = app.postService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
