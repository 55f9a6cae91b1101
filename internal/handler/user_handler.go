package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, func(r *http.Request, page domain.Page) ([]*domain.User, int, error) {
		return h.userService.ListUsers(r.Context(), page)
	}, domainUserToHTTP)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainUserToHTTP(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UserUpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	id := r.PathValue("id")
	user, err := h.userService.UpdateUser(r.Context(), id, httpUserToDomain(req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.logger.Info("user updated",
		zap.String("user_id", id),
		zap.String("username", user.Username),
		zap.Bool("password_changed", req.Password != ""))

	writeJSON(w, http.StatusOK, domainUserToHTTP(user))
}
