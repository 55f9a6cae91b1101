package repository

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page domain.Page) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
