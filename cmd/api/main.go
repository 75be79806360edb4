package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hubspot-webhook-relay/config"
	"hubspot-webhook-relay/docs"
	v1 "hubspot-webhook-relay/internal/delivery/http/v1"
	"hubspot-webhook-relay/internal/usecase"
	"hubspot-webhook-relay/pkg/hubspot"
	"hubspot-webhook-relay/pkg/logger"
	"hubspot-webhook-relay/pkg/validation"
)

// @title           HubSpot Webhook Relay API
// @version         1.0
// @description     Receives form-submission webhooks and relays contacts to HubSpot.
// @host            localhost:3000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting webhook relay", "port", cfg.Port)
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	// 3. Setup HubSpot client
	hubspotClient := hubspot.NewClient(cfg)

	// 4. Setup UseCases
	webhookUC := usecase.NewWebhookUsecase(hubspotClient, validation.New(), logger.Log)
	healthUC := usecase.NewHealthUsecase(cfg)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		WebhookUC: webhookUC,
		HealthUC:  healthUC,
		Config:    cfg,
		Logger:    logger.Log,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Webhook listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
