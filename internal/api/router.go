package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/pintunes/pintunes-api/internal/api/handler"
	"github.com/pintunes/pintunes-api/internal/api/middleware"
	"github.com/pintunes/pintunes-api/internal/core/ports"
	"github.com/pintunes/pintunes-api/internal/core/service"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	Store     ports.PinStore
	Generator ports.TextGenerator
	History   ports.ListeningHistory
	Directory ports.EmailDirectory // nil disables email→CID lookups
	Redis     *redis.Client        // nil when the directory is disabled
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pintunes"))
	e.Use(middleware.Session(deps.JWTSecret))

	// --- Services ---
	credentials := service.NewCredentialService(deps.Store, deps.Directory, deps.JWTSecret, 24*time.Hour, deps.Logger)
	posts := service.NewPostService(deps.Store, deps.Logger)
	assistant := service.NewAssistantService(deps.Store, deps.History, deps.Generator, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(credentials)
	userHandler := handler.NewUserHandler(credentials)
	postHandler := handler.NewPostHandler(posts)
	assistantHandler := handler.NewAssistantHandler(assistant)

	e.POST("/auth", authHandler.Handle)
	e.POST("/getUserData", userHandler.GetUserData)
	e.GET("/posts", postHandler.List)
	e.POST("/posts", postHandler.Create)

	// The assistant fans out to a metered upstream; keep a per-client lid on it.
	assistantLimiter := echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(2)))
	e.POST("/aiConversation", assistantHandler.Converse, assistantLimiter)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Store, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
