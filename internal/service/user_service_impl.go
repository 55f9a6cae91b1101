package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
	"github.com/bagdasarian/octofit-tracker/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context, page domain.Page) ([]*domain.User, int, error) {
	return listPage(ctx, page, s.userRepo.List, s.userRepo.Count)
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) UpdateUser(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	update.Username = strings.TrimSpace(update.Username)
	update.Email = strings.TrimSpace(update.Email)
	if update.Username == "" {
		return nil, domain.NewInvalidInputError("username is required")
	}
	if update.Email != "" && !strings.Contains(update.Email, "@") {
		return nil, domain.NewInvalidInputError("email %q is not valid", update.Email)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = update.Name
	user.Username = update.Username
	user.Email = update.Email
	user.Password = update.Password

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, id)
}
