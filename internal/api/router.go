package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/premiumerp/dashboard-gateway/docs"
	"github.com/premiumerp/dashboard-gateway/internal/api/handler"
	"github.com/premiumerp/dashboard-gateway/internal/api/middleware"
	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
	"github.com/premiumerp/dashboard-gateway/internal/core/service"
	"github.com/premiumerp/dashboard-gateway/internal/infrastructure/config"
	"github.com/premiumerp/dashboard-gateway/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	sessions *service.SessionService,
	configurator *service.ConfiguratorService,
	catalog ports.CatalogRepository,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions, configurator)
	configuratorHandler := handler.NewConfiguratorHandler(catalog, configurator)
	dashboardHandler := handler.NewDashboardHandler()

	sessionMW := middleware.Session(cfg.JWTSecret, sessions)

	// --- Auth routes ---
	auth := e.Group("/v1/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/logout", authHandler.Logout, sessionMW)
	auth.GET("/profile", authHandler.Profile, sessionMW)
	auth.PUT("/profile", authHandler.UpdateProfile, sessionMW)

	// --- Catalog ---
	e.GET("/v1/products", configuratorHandler.ListProducts,
		sessionMW, middleware.RequirePermissions(domain.PermViewProducts))

	// --- Configurator wizard ---
	cfgGroup := e.Group("/v1/configurator",
		sessionMW,
		middleware.RequirePermissions(domain.PermViewConfigurations, domain.PermCreateConfigurations))
	cfgGroup.GET("", configuratorHandler.Get)
	cfgGroup.POST("/product", configuratorHandler.SelectProduct)
	cfgGroup.POST("/variant", configuratorHandler.SelectVariant)
	cfgGroup.POST("/color", configuratorHandler.SelectColor)
	cfgGroup.POST("/quantity", configuratorHandler.SetQuantity)
	cfgGroup.POST("/next", configuratorHandler.Next)
	cfgGroup.POST("/back", configuratorHandler.Back)
	cfgGroup.POST("/reset", configuratorHandler.Reset)
	cfgGroup.POST("/submit", configuratorHandler.Submit,
		middleware.RequirePermissions(domain.PermCreateConfigurations))

	// --- Dashboard shell ---
	e.GET("/v1/dashboard/menu", dashboardHandler.Menu, sessionMW)

	// --- Observability and docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
