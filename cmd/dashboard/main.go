package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bike-dashboard/internal/api"
	"bike-dashboard/internal/api/handler"
	"bike-dashboard/internal/config"
	"bike-dashboard/internal/pipeline"
	"bike-dashboard/internal/store"
	"bike-dashboard/pkg/logger"
	"bike-dashboard/pkg/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env)
	log.WithFields(map[string]interface{}{
		"app":  cfg.App.Name,
		"env":  cfg.App.Env,
		"data": cfg.Data.Path,
	}).Info("Starting dashboard server")

	// Init DB
	if cfg.Store.Path != "" {
		if err := store.InitDB(cfg.Store.Path); err != nil {
			log.Fatalf("Failed to open run history: %v", err)
		}
		defer store.Close()
	} else {
		log.Warn("Run history disabled: store.path is empty")
	}

	opts, err := pipeline.OptionsFromConfig(cfg, log)
	if err != nil {
		log.Fatalf("Invalid render options: %v", err)
	}

	// Create router
	r := router.New(log)

	// Register API routes
	api.RegisterRoutes(r, handler.New(opts, log), cfg.Server.EnableSwagger)
	if cfg.Server.EnableSwagger {
		log.Info("Swagger documentation enabled at /swagger/index.html")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	err = r.Start(ctx, fmt.Sprintf(":%d", cfg.Server.Port), router.ServerOptions{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		log.Errorf("Server error: %v", err)
		store.Close()
		os.Exit(1)
	}
	log.Info("Server stopped")
}
