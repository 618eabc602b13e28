package api

import (
	"net/http"

	"drivesync-backend/internal/service"
)

type adminHandler struct {
	changeRequests service.ChangeRequestService
}

func (h *adminHandler) listPendingRequests(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.changeRequests.ListPendingRequests(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *adminHandler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.changeRequests.ApproveChangeRequest(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *adminHandler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.changeRequests.RejectChangeRequest(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
