package main

import (
	"context"
	"errors"
	"log"
	"lotbook/config"
	"lotbook/logging"
	"lotbook/middleware"
	"lotbook/webui"
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

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel, "web")
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	apiURL, err := config.APIBaseURL(cfg.App.Environment, cfg.Server.APIServer)
	if err != nil {
		logger.Fatal("invalid API base URL", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := webui.Templates()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	r := gin.New()
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.GET("/metrics", middleware.MetricsHandler())

	webui.New(webui.NewClient(apiURL), logger).Register(r)

	server := &http.Server{
		Addr:         ":" + cfg.Server.WebPort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("web ui starting", zap.String("port", cfg.Server.WebPort), zap.String("api", apiURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("web ui failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("web ui shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("web ui forced to shutdown", zap.Error(err))
	}
}
