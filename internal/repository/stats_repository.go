package repository

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type StatsRepository interface {
	GetUserActivityStats(ctx context.Context) ([]*domain.UserActivityStat, error)
	GetActivityTypeStats(ctx context.Context) ([]*domain.ActivityTypeStat, error)
}
