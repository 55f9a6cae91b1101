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

	"github.com/bagdasarian/octofit-tracker/internal/config"
	"github.com/bagdasarian/octofit-tracker/internal/db"
	"github.com/bagdasarian/octofit-tracker/internal/handler"
	"github.com/bagdasarian/octofit-tracker/internal/handler/server"
	"github.com/bagdasarian/octofit-tracker/internal/logging"
	"github.com/bagdasarian/octofit-tracker/internal/repository/postgres"
	"github.com/bagdasarian/octofit-tracker/internal/service"
)

func main() {
	cfg := config.MustLoad()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	database := db.MustLoad(ctx, cfg.Database)
	logger.Info("connected to database", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))
	defer database.Close()

	if err := db.Migrate(ctx, database, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	userRepo := postgres.NewUserRepository(database)
	teamRepo := postgres.NewTeamRepository(database)
	activityRepo := postgres.NewActivityRepository(database)
	workoutRepo := postgres.NewWorkoutRepository(database)
	leaderboardRepo := postgres.NewLeaderboardRepository(database)
	statsRepo := postgres.NewStatsRepository(database)

	h := handler.NewHandler(
		service.NewUserService(userRepo),
		service.NewTeamService(teamRepo),
		service.NewActivityService(activityRepo),
		service.NewWorkoutService(workoutRepo),
		service.NewLeaderboardService(leaderboardRepo),
		service.NewStatsService(statsRepo),
		logger,
	)
	srv := server.NewAPIServer(h, cfg.Server.APIAddr, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
}
