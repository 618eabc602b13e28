package api

import (
	"context"
	"net/http"
	"time"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/service"
)

type rentalHandler struct {
	rentals        service.RentalService
	changeRequests service.ChangeRequestService
}

type createRentalRequest struct {
	CarID            int32             `json:"car_id"`
	Start            time.Time         `json:"start_time"`
	End              time.Time         `json:"end_time"`
	Mode             domain.RentalMode `json:"mode"`
	DeliveryLocation string            `json:"delivery_location"`
}

func (h *rentalHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentals.CreateRental(r.Context(), sessionFrom(r), service.CreateRentalParams{
		CarID:            req.CarID,
		Start:            req.Start,
		End:              req.End,
		Mode:             req.Mode,
		DeliveryLocation: req.DeliveryLocation,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *rentalHandler) list(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	rentals, err := h.rentals.ListRentals(r.Context(), session, session.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *rentalHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentals.GetRental(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *rentalHandler) editTiming(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Start time.Time `json:"start_time"`
		End   time.Time `json:"end_time"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentals.EditTiming(r.Context(), sessionFrom(r), id, req.Start, req.End)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *rentalHandler) editDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Mode             domain.RentalMode `json:"mode"`
		DeliveryLocation string            `json:"delivery_location"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentals.EditDeliveryInfo(r.Context(), sessionFrom(r), id, req.Mode, req.DeliveryLocation)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *rentalHandler) complete(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.rentals.CompleteRental)
}

func (h *rentalHandler) cancel(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, h.rentals.CancelRental)
}

func (h *rentalHandler) finish(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, session *domain.Session, rentalID int32) (*domain.Rental, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := op(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *rentalHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	payments, err := h.rentals.ListPayments(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *rentalHandler) requestCarChange(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		NewCarID int32 `json:"new_car_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	change, err := h.changeRequests.RequestCarChange(r.Context(), sessionFrom(r), id, req.NewCarID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, change)
}
