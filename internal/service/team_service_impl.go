package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
	"github.com/bagdasarian/octofit-tracker/internal/repository"
)

type teamService struct {
	teamRepo repository.TeamRepository
}

func NewTeamService(teamRepo repository.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) ListTeams(ctx context.Context, page domain.Page) ([]*domain.Team, int, error) {
	return listPage(ctx, page, s.teamRepo.List, s.teamRepo.Count)
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	return s.teamRepo.GetByID(ctx, id)
}

func (s *teamService) UpdateTeam(ctx context.Context, id string, update domain.TeamUpdate) (*domain.Team, error) {
	name := strings.TrimSpace(update.Name)
	if name == "" {
		return nil, domain.NewInvalidInputError("team name is required")
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Name = name
	team.Members = cleanMembers(update.Members)

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	return team, nil
}

// cleanMembers trims usernames and drops blanks, keeping order. Duplicates
// are kept as sent.
func cleanMembers(members []string) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
