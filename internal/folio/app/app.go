package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/folio/internal/folio/http"
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/mongo"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portfolio API with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	media *media.Manager
	hs256 *jwtx.HS256

	// Services
	tokenService     *service.TokenService
	guard            *service.Guard
	userService      *service.UserService
	contentServices  map[domain.Kind]*service.ContentService
	commentService   *service.CommentService
	messageService   *service.MessageService
	bootstrapService *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "folio",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing and fail now if it is unusable
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	hs, err := jwtx.NewHS256([]byte(cfg.JWTSecret), jwtx.VerifyOptions{Issuer: cfg.TokenIssuer})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.hs256 = hs

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initMedia(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("folio starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"storage", app.cfg.StorageBackend,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
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
	app.logger.Info("shutting down folio...")

	// Give outstanding requests a deadline for completion
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

	app.logger.Info("folio stopped")
	return nil
}

// Handler exposes the fully wired router, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db     store.Store
		err    error
		driver string
	)
	if app.cfg.UsesMongo() {
		driver = "mongo"
		db, err = mongo.NewStore(ctx, app.cfg.DatabaseURL, app.cfg.MongoDatabase)
	} else {
		driver = "sqlite"
		host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseURL)
		db, err = sqlite.NewStore(host)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

// initMedia selects the image storage backend
func (app *Application) initMedia(ctx context.Context) error {
	var backend media.Backend
	switch app.cfg.StorageBackend {
	case StorageS3:
		s3b, err := media.NewS3Backend(ctx, media.S3Config{
			Bucket:       app.cfg.S3Bucket,
			Region:       app.cfg.S3Region,
			Endpoint:     app.cfg.S3Endpoint,
			AccessKey:    app.cfg.S3AccessKey,
			SecretKey:    app.cfg.S3SecretKey,
			PublicURL:    app.cfg.S3PublicURL,
			UsePathStyle: app.cfg.S3UsePathStyle,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		backend = s3b
	default:
		local, err := media.NewLocalBackend(app.cfg.MediaDir, app.cfg.MediaURLPrefix)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		backend = local
	}

	app.media = media.NewManager(backend, app.cfg.DefaultImageURL, app.cfg.StorageTimeout)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:   app.hs256,
		Verifier: app.hs256,
		Issuer:   app.cfg.TokenIssuer,
		TTL:      app.cfg.TokenTTL,
	}
	app.guard = &service.Guard{Store: app.db, Tokens: app.tokenService}

	app.userService = &service.UserService{
		Store:  app.db,
		Media:  app.media,
		Tokens: app.tokenService,
	}

	app.contentServices = make(map[domain.Kind]*service.ContentService, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		app.contentServices[kind] = &service.ContentService{
			Kind:     kind,
			Store:    app.db,
			Media:    app.media,
			PageSize: app.cfg.PageSize,
		}
	}

	app.commentService = &service.CommentService{Store: app.db}
	app.messageService = &service.MessageService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	if !app.bootstrapService.Enabled() {
		app.logger.Info("bootstrap endpoint disabled (BOOTSTRAP_TOKEN not set)")
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSAllowedOrigins,
	)

	// Wire services to router
	router.Guard = app.guard
	router.UserService = app.userService
	router.ContentServices = app.contentServices
	router.CommentService = app.commentService
	router.MessageService = app.messageService
	router.BootstrapService = app.bootstrapService
	router.Media = app.media
	router.MediaPrefix = app.cfg.MediaURLPrefix
	if app.cfg.StorageBackend == StorageLocal {
		router.MediaDir = app.cfg.MediaDir
	}
	router.Limits.Login = httpx.RateLimitConfig{
		RequestsPerWindow: app.cfg.LoginRateMax,
		Window:            app.cfg.LoginRateWindow,
		Burst:             app.cfg.LoginRateMax,
	}
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
