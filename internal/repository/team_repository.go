package repository

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	Update(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Team, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
