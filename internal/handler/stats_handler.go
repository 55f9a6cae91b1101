package handler

import (
	"net/http"
	"strconv"
)

// GetStats reports activity totals per user and per activity type.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userStats, err := h.statsService.GetUserActivityStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	typeStats, err := h.statsService.GetActivityTypeStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response := StatsResponse{
		Users:         make([]UserActivityStatResponse, len(userStats)),
		ActivityTypes: make([]ActivityTypeStatResponse, len(typeStats)),
	}

	for i, stat := range userStats {
		response.Users[i] = UserActivityStatResponse{
			UserID:     strconv.Itoa(stat.UserID),
			Username:   stat.Username,
			Activities: stat.Activities,
			Calories:   stat.Calories,
		}
	}

	for i, stat := range typeStats {
		response.ActivityTypes[i] = ActivityTypeStatResponse{
			ActivityType: stat.ActivityType,
			Count:        stat.Count,
			Calories:     stat.Calories,
		}
	}

	writeJSON(w, http.StatusOK, response)
}
