package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tokoadmin/internal/bootstrap"
	"tokoadmin/internal/config"
	"tokoadmin/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.AppName, cfg.Env)

	// --- Repositories, image store and services ---
	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	app := rt.App()

	// --- Start HTTP Server ---
	log.Infof("Starting server on port %s", cfg.Port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	if err := rt.Close(); err != nil {
		log.WithError(err).Error("Error releasing resources")
	}
	log.Info("Server gracefully stopped")
}
