package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/daydayup/contextgraph-backend/internal/api/handlers"
	"github.com/daydayup/contextgraph-backend/internal/api/middleware"
	applogger "github.com/daydayup/contextgraph-backend/internal/logger"
	"github.com/daydayup/contextgraph-backend/internal/webhook"
	ws "github.com/daydayup/contextgraph-backend/internal/websocket"
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	// DB is nil when running on the flat-file fallback
	DB             *gorm.DB
	Waitlist       handlers.WaitlistJoiner
	Forwarder      handlers.EmailForwarder
	Verifier       *webhook.Verifier
	Hub            *ws.Hub
	AllowedOrigins []string
	Logger         *slog.Logger
	SecurityLogger *applogger.SecurityLogger
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.SecureHeaders())
	e.Use(middleware.SecureCORS(cfg.AllowedOrigins))
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	waitlistHandler := handlers.NewWaitlistHandler(cfg.Waitlist, cfg.Logger)
	inboundHandler := handlers.NewInboundEmailHandler(cfg.Forwarder, cfg.Verifier, cfg.SecurityLogger, cfg.Logger)

	// Health routes
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// API routes
	api := e.Group("/api")
	api.POST("/waitlist", waitlistHandler.Join)
	api.GET("/waitlist", waitlistHandler.Count)
	api.POST("/emails/receive", inboundHandler.Receive)

	// Event stream
	if cfg.Hub != nil {
		wsHandler := handlers.NewWSHandler(cfg.Hub, cfg.AllowedOrigins, cfg.SecurityLogger, cfg.Logger)
		e.GET("/ws", wsHandler.Serve)
	}

	return e
}
