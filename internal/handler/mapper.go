package handler

import (
	"strconv"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func domainUserToHTTP(user *domain.User) UserResponse {
	return UserResponse{
		ID:       strconv.Itoa(user.ID),
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	}
}

func httpUserToDomain(req UserUpdateRequest) domain.UserUpdate {
	return domain.UserUpdate{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

func domainTeamToHTTP(team *domain.Team) TeamResponse {
	return TeamResponse{
		ID:      strconv.Itoa(team.ID),
		Name:    team.Name,
		Members: nonNil(team.Members),
	}
}

func httpTeamToDomain(req TeamUpdateRequest) domain.TeamUpdate {
	return domain.TeamUpdate{
		Name:    req.Name,
		Members: nonNil(req.Members),
	}
}

func domainActivityToHTTP(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           strconv.Itoa(a.ID),
		Username:     a.Username,
		ActivityType: a.ActivityType,
		Duration:     a.Duration,
		Calories:     a.Calories,
		Date:         a.Date.Format(domain.DateLayout),
	}
}

func domainLeaderboardToHTTP(e *domain.LeaderboardEntry) LeaderboardResponse {
	return LeaderboardResponse{
		ID:       strconv.Itoa(e.ID),
		Username: e.Username,
		Score:    e.Score,
	}
}

func domainWorkoutToHTTP(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:          strconv.Itoa(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Exercises:   nonNil(w.Exercises),
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func mapAll[D any, H any](items []*D, fn func(*D) H) []H {
	out := make([]H, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
