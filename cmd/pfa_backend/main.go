package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pocketfin/pocket_finance_app/internal/adapters/database/pgsql"
	"github.com/pocketfin/pocket_finance_app/internal/adapters/database/sqlite"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	"github.com/pocketfin/pocket_finance_app/internal/core/services"
	"github.com/pocketfin/pocket_finance_app/internal/handlers"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
	"github.com/pocketfin/pocket_finance_app/internal/platform/config"
	"github.com/pocketfin/pocket_finance_app/internal/utils"
	"github.com/pocketfin/pocket_finance_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title PFA Backend API
// @version 1.0
// @description Personal finance tracker with a credit product interest engine.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStore, err := openStorage(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("Storage ready", slog.String("driver", cfg.StorageDriver))

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, analytics)

	// Load the credit book and bring accrued interest current. A failure here
	// is not fatal: the refresh endpoint retries the same hydration.
	if err := serviceContainer.Credit.Hydrate(context.Background()); err != nil {
		logger.Warn("Credit product hydration failed at startup, retry via /credit-products/refresh",
			slog.String("error", err.Error()))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the mobile shell)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStorage builds the repository provider for the configured driver and
// returns a close function for the underlying connection.
func openStorage(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if err := runMigrations(cfg, logger); err != nil {
			pool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		store := pgsql.NewStore(pool)
		return store.Repositories(), pool.Close, nil

	default: // sqlite
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		store, err := sqlite.NewStore(db)
		if err != nil {
			db.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return store.Repositories(), func() { _ = db.Close() }, nil
	}
}

// runMigrations applies the postgres schema migrations from ./migrations.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations.
	// Using pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
