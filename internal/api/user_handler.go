package api

import (
	"net/http"

	"drivesync-backend/internal/service"
)

type userHandler struct {
	users service.UserService
}

func (h *userHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *userHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Email   string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), sessionFrom(r), service.UpdateProfileParams{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
