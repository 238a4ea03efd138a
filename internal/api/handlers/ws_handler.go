package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	applogger "github.com/daydayup/contextgraph-backend/internal/logger"
	ws "github.com/daydayup/contextgraph-backend/internal/websocket"
)

// WSHandler upgrades dashboard connections onto the event hub
type WSHandler struct {
	hub            *ws.Hub
	allowedOrigins map[string]bool
	secLogger      *applogger.SecurityLogger
	logger         *slog.Logger
}

// NewWSHandler creates a new WSHandler. An empty origin list allows any
// origin (development mode).
func NewWSHandler(hub *ws.Hub, allowedOrigins []string, secLogger *applogger.SecurityLogger, logger *slog.Logger) *WSHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &WSHandler{
		hub:            hub,
		allowedOrigins: origins,
		secLogger:      secLogger,
		logger:         logger,
	}
}

// Serve handles GET /ws
func (h *WSHandler) Serve(c echo.Context) error {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(h.allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if h.allowedOrigins[origin] {
				return true
			}
			if h.secLogger != nil {
				h.secLogger.InvalidOrigin(c.RealIP(), origin)
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		}
		return nil
	}

	client := ws.NewClient(h.hub, conn, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return nil
}
