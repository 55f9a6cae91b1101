package server

import (
	"net/http"

	"github.com/bagdasarian/octofit-tracker/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("GET /api/{$}", h.APIRoot)

	mux.HandleFunc("GET /api/users/{$}", h.ListUsers)
	mux.HandleFunc("GET /api/users/{id}/{$}", h.GetUser)
	mux.HandleFunc("PUT /api/users/{id}/{$}", h.UpdateUser)

	mux.HandleFunc("GET /api/teams/{$}", h.ListTeams)
	mux.HandleFunc("GET /api/teams/{id}/{$}", h.GetTeam)
	mux.HandleFunc("PUT /api/teams/{id}/{$}", h.UpdateTeam)

	mux.HandleFunc("GET /api/activities/{$}", h.ListActivities)
	mux.HandleFunc("GET /api/leaderboard/{$}", h.ListLeaderboard)
	mux.HandleFunc("GET /api/workouts/{$}", h.ListWorkouts)

	mux.HandleFunc("GET /api/stats/{$}", h.GetStats)
}
