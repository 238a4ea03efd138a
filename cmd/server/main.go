package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/daydayup/contextgraph-backend/internal/api"
	"github.com/daydayup/contextgraph-backend/internal/config"
	"github.com/daydayup/contextgraph-backend/internal/database"
	applogger "github.com/daydayup/contextgraph-backend/internal/logger"
	"github.com/daydayup/contextgraph-backend/internal/repository"
	"github.com/daydayup/contextgraph-backend/internal/resend"
	"github.com/daydayup/contextgraph-backend/internal/services"
	"github.com/daydayup/contextgraph-backend/internal/storage"
	"github.com/daydayup/contextgraph-backend/internal/webhook"
	ws "github.com/daydayup/contextgraph-backend/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := applogger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	cfg.LogConfig(logger)

	secLogger := applogger.NewSecurityLogger()

	// Event hub for dashboard clients
	hub := ws.NewHub(logger)
	go hub.Run()

	// Email provider (send path fails loudly when unconfigured,
	// everything else degrades)
	provider := resend.NewClient(cfg.ResendBaseURL, cfg.ResendAPIKey)
	if !provider.IsConfigured() {
		logger.Warn("RESEND_API_KEY not set, outbound email disabled")
	}

	// Waitlist store: managed database when configured, flat-file
	// fallback otherwise
	var (
		db            *gorm.DB
		waitlistStore repository.WaitlistStore
		archiveRepo   repository.ReceivedEmailRepository
	)
	if cfg.DatabaseConfigured() {
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		waitlistStore = repository.NewWaitlistRepository(db)
		archiveRepo = repository.NewReceivedEmailRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, using flat-file waitlist store",
			"path", cfg.WaitlistFilePath)

		fileStore, err := storage.NewFileWaitlistStore(cfg.WaitlistFilePath)
		if err != nil {
			logger.Error("failed to initialize file store", "error", err)
			os.Exit(1)
		}
		waitlistStore = fileStore
	}

	// Webhook signature verification (skipped entirely when no secret
	// is configured)
	var verifier *webhook.Verifier
	if cfg.SigningRequired() {
		verifier, err = webhook.NewVerifier(cfg.WebhookSigningSecret)
		if err != nil {
			logger.Error("invalid webhook signing secret", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("RESEND_WEBHOOK_SECRET not set, accepting unsigned webhooks")
	}

	waitlistService := services.NewWaitlistService(waitlistStore, provider, hub, cfg.WelcomeFromAddress, logger)
	forwarder := services.NewForwarder(provider, archiveRepo, hub, cfg.ForwardToAddress, cfg.ForwardFromAddress, logger)

	e := api.NewRouter(&api.RouterConfig{
		DB:             db,
		Waitlist:       waitlistService,
		Forwarder:      forwarder,
		Verifier:       verifier,
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		SecurityLogger: secLogger,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		logger.Info("starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
