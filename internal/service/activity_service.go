package service

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
	"github.com/bagdasarian/octofit-tracker/internal/repository"
)

// ReadService lists one read-only resource page by page.
type ReadService[T any] interface {
	List(ctx context.Context, page domain.Page) ([]*T, int, error)
}

type ActivityService = ReadService[domain.Activity]
type WorkoutService = ReadService[domain.Workout]
type LeaderboardService = ReadService[domain.LeaderboardEntry]

type lister[T any] interface {
	List(ctx context.Context, page domain.Page) ([]*T, error)
	Count(ctx context.Context) (int, error)
}

type readService[T any] struct {
	repo lister[T]
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &readService[domain.Activity]{repo: repo}
}

func NewWorkoutService(repo repository.WorkoutRepository) WorkoutService {
	return &readService[domain.Workout]{repo: repo}
}

func NewLeaderboardService(repo repository.LeaderboardRepository) LeaderboardService {
	return &readService[domain.LeaderboardEntry]{repo: repo}
}

func (s *readService[T]) List(ctx context.Context, page domain.Page) ([]*T, int, error) {
	return listPage(ctx, page, s.repo.List, s.repo.Count)
}

// listPage runs list and, for a bounded page, count. An unbounded page counts
// the rows it got back.
func listPage[T any](
	ctx context.Context,
	page domain.Page,
	list func(context.Context, domain.Page) ([]*T, error),
	count func(context.Context) (int, error),
) ([]*T, int, error) {
	items, err := list(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	if page.Limit <= 0 {
		return items, len(items), nil
	}

	total, err := count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
