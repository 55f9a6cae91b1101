package service

import (
	"context"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

type TeamService interface {
	ListTeams(ctx context.Context, page domain.Page) ([]*domain.Team, int, error)
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
	// UpdateTeam replaces the name and the whole member list.
	UpdateTeam(ctx context.Context, id string, update domain.TeamUpdate) (*domain.Team, error)
}
