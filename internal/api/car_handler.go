package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/service"
)

type carHandler struct {
	cars service.CarService
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func (h *carHandler) list(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.ListCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *carHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	car, err := h.cars.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *carHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Status domain.CarStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	car, err := h.cars.SetCarStatus(r.Context(), sessionFrom(r), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}
