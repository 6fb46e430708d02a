package api

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/absoluteru/community-api/internal/api/handler"
	"github.com/absoluteru/community-api/internal/api/middleware"
	"github.com/absoluteru/community-api/internal/core/domain"
	"github.com/absoluteru/community-api/internal/core/ports"
	"github.com/absoluteru/community-api/internal/infrastructure/config"
	"github.com/absoluteru/community-api/internal/infrastructure/http/handlers"
	"github.com/absoluteru/community-api/pkg/logger"
)

// Dependencies carries everything the router needs that is built in main.
type Dependencies struct {
	Config *config.Config
	DB     *badger.DB

	// Users backs the session middleware's per-request identity resolution.
	Users ports.UserRepository

	UserService     ports.UserService
	FeedbackService ports.FeedbackService
	StatsService    ports.StatsService
	StatusService   ports.StatusService

	Provider ports.IdentityProvider
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echoprometheus.NewMiddleware("community"))
	e.Use(middleware.Session(deps.Config.SessionSecret, deps.Users))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Provider, deps.UserService, deps.Config.SessionSecret, log)
	userHandler := handler.NewUserHandler(deps.UserService)
	feedbackHandler := handler.NewFeedbackHandler(deps.FeedbackService)
	statsHandler := handler.NewStatsHandler(deps.StatsService)
	statusHandler := handler.NewStatusHandler(deps.StatusService)

	// --- Auth routes ---
	e.GET("/auth/login", authHandler.Login)
	e.GET("/auth/login/return", authHandler.Return)
	e.GET("/auth/logout", authHandler.Logout)

	// --- Public API ---
	e.GET("/api/user", userHandler.Current)
	e.GET("/api/stats/:id", statsHandler.Get)
	e.POST("/api/stats/update", statsHandler.Update) // gated by shared secret, not session
	e.GET("/api/server/status", statusHandler.Get)

	// --- Authenticated API ---
	e.POST("/api/feedback", feedbackHandler.Submit, middleware.RequireAuth())
	e.GET("/api/feedback/my", feedbackHandler.My, middleware.RequireAuth())

	// --- Staff API ---
	e.GET("/api/feedback", feedbackHandler.List, middleware.RequireLevel(domain.LevelModerator))
	e.PATCH("/api/feedback/:id", feedbackHandler.Update, middleware.RequireLevel(domain.LevelModerator))
	e.GET("/api/admin/users", userHandler.List, middleware.RequireLevel(domain.LevelAdmin))
	e.POST("/api/admin/change-role", userHandler.ChangeRole, middleware.RequireLevel(domain.LevelOwner))

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.DB).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Presentation shell: catch-all static SPA ---
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  deps.Config.StaticDir,
		HTML5: true,
	}))

	return e
}
