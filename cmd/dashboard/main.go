package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/config"
	"github.com/bagdasarian/octofit-tracker/internal/dashboard"
	"github.com/bagdasarian/octofit-tracker/internal/handler/server"
	"github.com/bagdasarian/octofit-tracker/internal/logging"
)

func main() {
	cfg := config.MustLoad()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	baseURL := cfg.APIBaseURL()
	client := apiclient.New(baseURL,
		apiclient.WithTimeout(cfg.Client.Timeout),
		apiclient.WithLogger(logger),
	)
	logger.Info("using api", zap.String("base_url", baseURL))

	d, err := dashboard.New(client, logger)
	if err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}
	srv := server.NewServer(d.Routes(), cfg.Server.DashboardAddr, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
}
