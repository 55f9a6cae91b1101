package service

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type StatsService interface {
	GetUserActivityStats(ctx context.Context) ([]*domain.UserActivityStat, error)
	GetActivityTypeStats(ctx context.Context) ([]*domain.ActivityTypeStat, error)
}
