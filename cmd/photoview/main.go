package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/dc25/photoview/internal/config"
	"github.com/dc25/photoview/internal/flickr"
	"github.com/dc25/photoview/internal/hub"
	"github.com/dc25/photoview/internal/logging"
	"github.com/dc25/photoview/internal/router"
	"github.com/dc25/photoview/internal/viewer"
)

func main() {
	bootstrapLogger := logging.New(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		bootstrapLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	client := flickr.NewClient(cfg.APIKey, &http.Client{Timeout: cfg.HTTPTimeout})

	updates := hub.New(logger)
	go updates.Run()

	manager := viewer.NewManager(logger, client, client, updates)

	logger.Info("starting server", "addr", cfg.Addr)

	r := router.New(logger, manager, updates)

	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
