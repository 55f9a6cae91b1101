package repository

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	List(ctx context.Context, page domain.Page) ([]*domain.Activity, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	List(ctx context.Context, page domain.Page) ([]*domain.Workout, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type LeaderboardRepository interface {
	Create(ctx context.Context, entry *domain.LeaderboardEntry) error
	List(ctx context.Context, page domain.Page) ([]*domain.LeaderboardEntry, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
