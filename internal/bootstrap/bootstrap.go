package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/tenacity/erp/internal/app/controllers"
	appMigrations "github.com/tenacity/erp/internal/app/migrations"
	"github.com/tenacity/erp/internal/app/reports"
	appRepos "github.com/tenacity/erp/internal/app/repositories"
	appRoutes "github.com/tenacity/erp/internal/app/routes"
	appServices "github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/config"
	"github.com/tenacity/erp/internal/db"
	appMiddleware "github.com/tenacity/erp/internal/middleware"
	pkgAuth "github.com/tenacity/erp/internal/pkg/auth"
	"github.com/tenacity/erp/internal/pkg/filestorage"
	"github.com/tenacity/erp/internal/pkg/helpers"
	"github.com/tenacity/erp/internal/pkg/logger"
	"github.com/tenacity/erp/internal/pkg/websocket"
	"github.com/tenacity/erp/internal/seed"
)

// ArchiveURLPath is the URL prefix archived documents are served under
const ArchiveURLPath = "/archive"

const storeTimeout = 10 * time.Second

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store          appRepos.CollectionStore
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	ChatHub        *websocket.Hub
	ChatHandler    *websocket.Handler
	Archive        *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured collection store. For postgres the
// migrations run before the store is handed out.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.CollectionStore, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Str("path", cfg.Database.MigrationsDir).Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database)
		if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		return appRepos.NewPostgresStore(database.Pool), nil

	case config.StorageRedis:
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connecting to redis...")
		store, err := appRepos.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to redis")
			return nil, err
		}
		return store, nil

	default:
		lgr.Warn().Msg("Using in-memory storage; data is lost on restart")
		return appRepos.NewMemoryStore(), nil
	}
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, store appRepos.CollectionStore, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store, appRepos.Seeds{
		Students:     seed.Students,
		Transactions: seed.Transactions,
		Rooms:        seed.Rooms,
	})

	// Seed missing collections; a failure here only means the fallback data is used
	if err := seed.CreateDefaultData(ctx, lgr, deps.Repos.Students, deps.Repos.Transactions, deps.Repos.Rooms); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	var err error
	deps.Archive, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, ArchiveURLPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize document archive")
		return nil, fmt.Errorf("failed to initialize document archive: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		TokenExp:    helpers.ParseDuration(cfg.Session.Expiration, 12*time.Hour),
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos: deps.Repos,
		JWT:   deps.JWTService,
		Reports: reports.NewGenerator(reports.Config{
			Institution: cfg.Institution.Name,
			Footer:      cfg.Institution.Footer,
			Locale:      cfg.Institution.Locale,
		}),
		Archive: deps.Archive,
		Locale:  cfg.Institution.Locale,
		Clock:   time.Now,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Session: appControllers.NewSessionController(deps.Services.Sessions),
		Student: appControllers.NewStudentController(deps.Services.Students, deps.Services.Reports),
		Fee:     appControllers.NewFeeController(deps.Services.Fees),
		Hostel:  appControllers.NewHostelController(deps.Services.Hostel),
		Report:  appControllers.NewReportController(deps.Services.Reports, deps.Services.Admin),
		Chat:    appControllers.NewChatController(deps.Services.Chat),
	}

	deps.ChatHub = websocket.NewHub(logger.For("chat"))
	deps.ChatHandler = websocket.NewHandler(deps.ChatHub, logger.For("chat"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.For("http")), appMiddleware.CORS(cfg.Server.AllowedOrigins))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.ChatHandler)

	// Archived receipts
	router.Static(ArchiveURLPath, deps.Archive.GetBasePath())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
