package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/monsite/console-api/internal/api/handler"
	"github.com/monsite/console-api/internal/api/middleware"
	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
	"github.com/monsite/console-api/internal/core/service"
	"github.com/monsite/console-api/internal/infrastructure/config"
	mongodb "github.com/monsite/console-api/internal/infrastructure/db/mongo"
	"github.com/monsite/console-api/internal/infrastructure/db/postgres"
	redisdb "github.com/monsite/console-api/internal/infrastructure/db/redis"
	"github.com/monsite/console-api/internal/infrastructure/workflow"
	"github.com/monsite/console-api/pkg/logger"
)

// Deps carries the shared infrastructure handles the router wires into
// services and handlers.
type Deps struct {
	Config    *config.Config
	Mongo     *mongo.Database
	Redis     *redis.Client
	Analytics *pgxpool.Pool // nil disables the schema endpoint
	Recorder  ports.AuditRecorder
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	log := logger.Get()
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	dashboardRepo := mongodb.NewDashboardRepository(deps.Mongo)
	lockoutStore := redisdb.NewLockoutStore(deps.Redis)
	prefStore := redisdb.NewPreferenceStore(deps.Redis)

	directory := service.NewDirectoryService(userRepo, service.DefaultFallbackDirectory(), deps.Recorder, log)
	loginGuard := service.NewLockoutGuard(lockoutStore, domain.FormLogin, service.LoginMaxAttempts, service.LockoutWindow, log)
	resetGuard := service.NewLockoutGuard(lockoutStore, domain.FormPasswordReset, service.ResetMaxAttempts, service.LockoutWindow, log)
	authService := service.NewAuthService(userRepo, directory, loginGuard, resetGuard, deps.Recorder,
		cfg.JWTSecret, cfg.TokenTTL, cfg.DemoFallback, log)
	dashboardService := service.NewDashboardService(dashboardRepo, deps.Recorder, log)
	workflowClient := workflow.NewClient(cfg.Workflow.WebhookURL, cfg.Workflow.Timeout, log)
	vizService := service.NewVisualizationService(workflowClient, log)
	metricsService := service.NewMetricsService(userRepo)

	authHandler := handler.NewAuthHandler(authService, directory)
	userHandler := handler.NewUserHandler(directory)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	vizHandler := handler.NewVisualizationHandler(vizService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	prefsHandler := handler.NewPreferencesHandler(prefStore)

	var schemaRepo ports.SchemaRepository
	if deps.Analytics != nil {
		schemaRepo = postgres.NewSchemaRepository(deps.Analytics)
	}
	schemaHandler := handler.NewSchemaHandler(schemaRepo)
	auditHandler := handler.NewAuditHandler(mongodb.NewAuditRepository(deps.Mongo))

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/reset-password", authHandler.RequestReset)
	e.POST("/auth/reset-password/confirm", authHandler.ConfirmReset)
	e.GET("/auth/me", authHandler.Me, authMiddleware)
	e.PUT("/auth/me/password", authHandler.ChangePassword, authMiddleware)

	// Signup-form validation probe, reachable before authentication.
	e.GET("/v1/users/exists/:email", userHandler.Exists)

	// --- User directory (users:manage enforced per-operation in the service;
	// List fails closed with an empty result instead of 403) ---
	users := e.Group("/v1/users", authMiddleware)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id/profile", userHandler.UpdateProfile)
	users.PUT("/:id/role", userHandler.UpdateRole)
	users.PUT("/:id/password", userHandler.SetPassword)
	users.DELETE("/:id", userHandler.Delete)

	// --- Dashboard catalog ---
	dashboards := e.Group("/v1/dashboards", authMiddleware)
	dashboards.POST("", dashboardHandler.Create)
	dashboards.GET("", dashboardHandler.List)
	dashboards.GET("/:id", dashboardHandler.Get)
	dashboards.PUT("/:id", dashboardHandler.Update)
	dashboards.DELETE("/:id", dashboardHandler.Delete)

	// --- Visualizations and schema introspection ---
	e.POST("/v1/visualizations", vizHandler.Generate,
		authMiddleware, middleware.RequirePermission(domain.PermDashboardView))
	e.GET("/v1/schema/:schema", schemaHandler.Tables,
		authMiddleware, middleware.RequirePermission(domain.PermSystemMonitor))

	// --- Audit trail (admin monitoring) ---
	e.GET("/v1/audit/:actor", auditHandler.ListByActor,
		authMiddleware, middleware.RequirePermission(domain.PermSystemMonitor))

	// --- Console metrics (admin landing page) ---
	e.GET("/v1/metrics/dashboard", metricsHandler.Dashboard,
		authMiddleware, middleware.RequirePermission(domain.PermMetricsView))

	// --- Preferences ---
	e.GET("/v1/preferences", prefsHandler.Get, authMiddleware)
	e.PUT("/v1/preferences", prefsHandler.Put, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Analytics)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
