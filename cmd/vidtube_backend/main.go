package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SscSPs/vidtube_backend/internal/adapters/media"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/handlers"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/SscSPs/vidtube_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/vidtube_backend/pkg/database"
)

// @title VidTube Backend API
// @version 1.0
// @description User accounts, sessions and channel views of the VidTube video platform.

// @host localhost:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. The accessToken cookie works as well.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	uploader, err := media.New(media.Config{
		Endpoint:      cfg.MediaEndpoint,
		AccessKey:     cfg.MediaAccessKey,
		SecretKey:     cfg.MediaSecretKey,
		Bucket:        cfg.MediaBucket,
		UseSSL:        cfg.MediaUseSSL,
		PublicBaseURL: cfg.MediaPublicBaseURL,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize media uploader", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiterStore, err := newLimiterStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize rate limit store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, uploader)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, limiterStore)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLimiterStore shares login rate limits through Redis when REDIS_URL is set.
// A nil store makes the handlers fall back to per-process memory.
func newLimiterStore(ctx context.Context, logger *slog.Logger, cfg *config.Config) (limiter.Store, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, login rate limit is kept in memory")
		return nil, nil
	}
	client, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "vidtube_login"})
}

func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	// Migrations use a separate database/sql handle on the pgx stdlib driver.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
