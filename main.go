package main

import (
	"context"
	"errors"
	"log"
	"lotbook/config"
	"lotbook/database"
	"lotbook/handlers"
	"lotbook/logging"
	"lotbook/models"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel, "gateway")
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := database.Open(context.Background(), cfg.Store, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	r := handlers.NewRouter(handlers.RouterDeps{
		Store:       store,
		Logger:      logger,
		MapOptions:  models.MapOptions{LegacyPlaceholders: cfg.Store.LegacyPlaceholders},
		CORSOrigins: cfg.Server.CORSOrigins,
		Driver:      cfg.Store.Driver,
		Version:     cfg.App.Version,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("driver", cfg.Store.Driver),
			zap.Bool("legacy_placeholders", cfg.Store.LegacyPlaceholders))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := store.Close(ctx); err != nil {
		logger.Error("failed to close store", zap.Error(err))
	}

	logger.Info("server exited")
}
