package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boardly/access-engine/internal/api/handler"
	"github.com/boardly/access-engine/internal/api/middleware"
	"github.com/boardly/access-engine/internal/core/domain"
	"github.com/boardly/access-engine/internal/core/service"
	"github.com/boardly/access-engine/internal/infrastructure/config"
	mongodb "github.com/boardly/access-engine/internal/infrastructure/db/mongo"
	redisdb "github.com/boardly/access-engine/internal/infrastructure/db/redis"
	httphandlers "github.com/boardly/access-engine/internal/infrastructure/http/handlers"
	"github.com/boardly/access-engine/internal/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("access_engine"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Engine wiring ---
	repo := mongodb.NewPrincipalRepository(db)
	store := service.NewCredentialService(repo, cfg.Auth.BCryptCost)
	codec := service.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	// Login attempts share one budget per username across instances via
	// Redis; general traffic is limited in-process per origin.
	loginLimiter := redisdb.NewLimiter(rdb, "auth", cfg.Auth.LoginRateMax, cfg.Auth.LoginRateWindow)
	generalLimiter := ratelimit.New(cfg.Auth.GeneralRateMax, cfg.Auth.GeneralRateWin)

	keys := redisdb.NewAPIKeyStore(rdb)
	gateway := service.NewAuthenticationGateway(store, codec, loginLimiter, keys, keys, log)
	guard := service.NewAuthorizationGuard(domain.DefaultPermissionMatrix(), nil)

	authHandler := handler.NewAuthHandler(store, gateway)
	principalHandler := handler.NewPrincipalHandler(store)

	authenticate := middleware.Authenticate(gateway)
	limitGeneral := middleware.RateLimit(generalLimiter, "general", middleware.KeyByIP)

	// --- Public auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("/auth", limitGeneral, authenticate)
	authed.GET("/me", authHandler.Me)
	authed.POST("/apikeys", authHandler.IssueAPIKey)

	// --- Administrative principal management ---
	admin := e.Group("/admin/principals", limitGeneral, authenticate,
		middleware.RequirePermission(guard, domain.ResourceUser, domain.OpAdmin))
	admin.GET("/:id", principalHandler.Get)
	admin.PATCH("/:id", principalHandler.Update)
	admin.DELETE("/:id", principalHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
