package handler

import (
	"net/http"
	"net/url"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, func(r *http.Request, page domain.Page) ([]*domain.Activity, int, error) {
		return h.activityService.List(r.Context(), page)
	}, domainActivityToHTTP)
}

func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, func(r *http.Request, page domain.Page) ([]*domain.Workout, int, error) {
		return h.workoutService.List(r.Context(), page)
	}, domainWorkoutToHTTP)
}

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, func(r *http.Request, page domain.Page) ([]*domain.LeaderboardEntry, int, error) {
		return h.leaderboardService.List(r.Context(), page)
	}, domainLeaderboardToHTTP)
}

// Resources lists the collection names served under /api/.
var Resources = []string{"users", "teams", "activities", "leaderboard", "workouts"}

// APIRoot returns the absolute URL of every collection.
func (h *Handler) APIRoot(w http.ResponseWriter, r *http.Request) {
	links := make(map[string]string, len(Resources))
	for _, name := range Resources {
		u := url.URL{Scheme: requestScheme(r), Host: r.Host, Path: "/api/" + name + "/"}
		links[name] = u.String()
	}
	writeJSON(w, http.StatusOK, links)
}
