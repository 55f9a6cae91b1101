package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, func(r *http.Request, page domain.Page) ([]*domain.Team, int, error) {
		return h.teamService.ListTeams(r.Context(), page)
	}, domainTeamToHTTP)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	id := r.PathValue("id")
	team, err := h.teamService.UpdateTeam(r.Context(), id, httpTeamToDomain(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("team updated",
		zap.String("team_id", id),
		zap.String("name", team.Name),
		zap.Int("members", len(team.Members)))

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}
