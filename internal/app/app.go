package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/base-angewandte/image-backend-sub000/internal/config"
	"github.com/base-angewandte/image-backend-sub000/internal/event"
	handler "github.com/base-angewandte/image-backend-sub000/internal/handler/http"
	"github.com/base-angewandte/image-backend-sub000/internal/repository/postgres"
	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/migrations"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	"github.com/base-angewandte/image-backend-sub000/pkg/health"
	pkgkafka "github.com/base-angewandte/image-backend-sub000/pkg/kafka"
	"github.com/base-angewandte/image-backend-sub000/pkg/middleware"
)

// App wires together all dependencies and runs the image backend API server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "image-backend")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Kafka producer. A dead broker degrades event publishing but
	// must not keep the search API from serving.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	if err := producer.Ping(ctx); err != nil {
		logger.Warn("kafka broker unreachable, continuing in degraded mode",
			slog.String("error", err.Error()),
		)
	} else {
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	artworkRepo := postgres.NewArtworkRepository(pool)
	searchRepo := postgres.NewSearchRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	albumRepo := postgres.NewAlbumRepository(pool)
	folderRepo := postgres.NewFolderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	autocompleteRepo := postgres.NewAutocompleteRepository(pool)
	termRepo := postgres.NewDiscriminatoryTermRepository(pool)
	taxonomyRepo := postgres.NewTaxonomyRepository(pool)

	eventProducer := event.NewProducer(producer, logger)

	searchService := service.NewSearchService(searchRepo, artworkRepo, cfg.MediaBaseURL, logger)
	autocompleteService := service.NewAutocompleteService(autocompleteRepo, logger)
	artworkService := service.NewArtworkService(artworkRepo, personRepo, eventProducer, logger)
	albumService := service.NewAlbumService(albumRepo, artworkRepo, userRepo, logger)
	folderService := service.NewFolderService(folderRepo, albumRepo, logger)
	termService := service.NewDiscriminatoryTermService(termRepo)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		SearchService:       searchService,
		AutocompleteService: autocompleteService,
		ArtworkService:      artworkService,
		AlbumService:        albumService,
		FolderService:       folderService,
		TermService:         termService,
		TaxonomyRepo:        taxonomyRepo,
		UserRepo:            userRepo,
		HealthHandler:       healthHandler,
		CORS:                middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		PprofCIDRs:          cfg.PprofAllowedCIDRs,
		ServiceName:         "image-backend",
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
