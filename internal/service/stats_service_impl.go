package service

import (
	"context"
	"fmt"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
	"github.com/bagdasarian/octofit-tracker/internal/repository"
)

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetUserActivityStats(ctx context.Context) ([]*domain.UserActivityStat, error) {
	stats, err := s.statsRepo.GetUserActivityStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user activity stats: %w", err)
	}
	return stats, nil
}

func (s *statsService) GetActivityTypeStats(ctx context.Context) ([]*domain.ActivityTypeStat, error) {
	stats, err := s.statsRepo.GetActivityTypeStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("activity type stats: %w", err)
	}
	return stats, nil
}
