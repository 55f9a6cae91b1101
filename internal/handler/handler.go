package handler

import (
	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/service"
)

type Handler struct {
	userService        service.UserService
	teamService        service.TeamService
	activityService    service.ActivityService
	workoutService     service.WorkoutService
	leaderboardService service.LeaderboardService
	statsService       service.StatsService
	logger             *zap.Logger
}

func NewHandler(
	userService service.UserService,
	teamService service.TeamService,
	activityService service.ActivityService,
	workoutService service.WorkoutService,
	leaderboardService service.LeaderboardService,
	statsService service.StatsService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		userService:        userService,
		teamService:        teamService,
		activityService:    activityService,
		workoutService:     workoutService,
		leaderboardService: leaderboardService,
		statsService:       statsService,
		logger:             logger,
	}
}
