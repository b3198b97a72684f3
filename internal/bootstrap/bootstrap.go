package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emirhan/coursedeck/internal/app/controllers"
	appMigrations "github.com/emirhan/coursedeck/internal/app/migrations"
	"github.com/emirhan/coursedeck/internal/app/models/dto"
	appRepos "github.com/emirhan/coursedeck/internal/app/repositories"
	appRoutes "github.com/emirhan/coursedeck/internal/app/routes"
	appServices "github.com/emirhan/coursedeck/internal/app/services"
	"github.com/emirhan/coursedeck/internal/config"
	"github.com/emirhan/coursedeck/internal/db"
	appMiddleware "github.com/emirhan/coursedeck/internal/middleware"
	"github.com/emirhan/coursedeck/internal/pkg/cache"
	"github.com/emirhan/coursedeck/internal/pkg/logger"
	"github.com/emirhan/coursedeck/internal/pkg/upstream"
	"github.com/emirhan/coursedeck/internal/scheduler"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	SyncService        appServices.SyncService     // Interface type
	CatalogService     appServices.CatalogService  // Interface type
	ScheduleService    appServices.ScheduleService // Interface type
	SyncController     *appControllers.SyncController
	CatalogController  *appControllers.CatalogController
	ScheduleController *appControllers.ScheduleController
	Repos              *appRepos.Repositories
	Upstream           upstream.Client
	CourseCache        *cache.TTLCache[[]dto.CourseResponse]
	Scheduler          *scheduler.Scheduler
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.Upstream = upstream.NewHTTPClient(cfg.Upstream.BaseURL, cfg.GetUpstreamTimeout(), lgr)

	// One shared memory tier: the catalog reads through it, the sync engine
	// clears it after writing fresh data.
	deps.CourseCache = cache.New[[]dto.CourseResponse](cfg.GetCacheTTL())

	// Initialize services
	deps.SyncService = appServices.NewSyncService(
		deps.Upstream,
		deps.Repos.SeasonRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.SectionRepository,
		deps.CourseCache,
		nil, // default season pick policy
		lgr,
	)

	deps.CatalogService = appServices.NewCatalogService(
		deps.Upstream,
		deps.Repos.SeasonRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.CourseRepository,
		deps.CourseCache,
		lgr,
	)

	deps.ScheduleService = appServices.NewScheduleService(deps.Repos.ScheduleRepository)

	deps.SyncController = appControllers.NewSyncController(deps.SyncService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService)

	if cfg.Sync.Enabled {
		deps.Scheduler = scheduler.New(deps.SyncService, cfg.Sync.Cron, lgr)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.CORS())

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.CatalogController,
		deps.SyncController,
		deps.ScheduleController,
		cfg.Sync.AdminKey,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
