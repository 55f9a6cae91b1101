package service

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type UserService interface {
	// ListUsers returns one page of users and the total number of users.
	ListUsers(ctx context.Context, page domain.Page) ([]*domain.User, int, error)

	GetUser(ctx context.Context, id string) (*domain.User, error)

	// UpdateUser replaces name, username and email; the password only when
	// a new one is given.
	UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
}
