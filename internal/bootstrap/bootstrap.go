package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rct/connect/internal/app/controllers"
	appRepos "github.com/rct/connect/internal/app/repositories"
	appRoutes "github.com/rct/connect/internal/app/routes"
	appServices "github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/config"
	appMiddleware "github.com/rct/connect/internal/middleware"
	pkgAuth "github.com/rct/connect/internal/pkg/auth"
	"github.com/rct/connect/internal/pkg/logger"
	"github.com/rct/connect/internal/pkg/ws"
	"github.com/rct/connect/internal/seed"
	"github.com/rct/connect/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Services *appServices.Services

	AuthController         *appControllers.AuthController
	EventController        *appControllers.EventController
	PostController         *appControllers.PostController
	StoryController        *appControllers.StoryController
	CourseController       *appControllers.CourseController
	MessageController      *appControllers.MessageController
	NotificationController *appControllers.NotificationController
	SettingsController     *appControllers.SettingsController

	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Hub            *ws.Hub
	WSHandler      *ws.Handler
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

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the JSON document store and seeds default data.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*store.Store, error) {
	lgr.Info().Str("path", cfg.Storage.Path).Msg("Opening data store...")
	s, err := store.Open(cfg.Storage.Path, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open data store")
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}

	if err := seed.CreateDefaultData(s, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
	return s, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, s *store.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(s)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Hub = ws.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = ws.NewHandler(deps.Hub, deps.JWTService, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.EventController = appControllers.NewEventController(deps.Services.Events)
	deps.PostController = appControllers.NewPostController(deps.Services.Posts)
	deps.StoryController = appControllers.NewStoryController(deps.Services.Stories)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Courses)
	deps.MessageController = appControllers.NewMessageController(deps.Services.Messages)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.Notifications)
	deps.SettingsController = appControllers.NewSettingsController(deps.Services.Settings)

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

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EventController,
		deps.PostController,
		deps.StoryController,
		deps.CourseController,
		deps.MessageController,
		deps.NotificationController,
		deps.SettingsController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
