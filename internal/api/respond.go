package api

import (
	"encoding/json"
	"net/http"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
)

type errorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("encode response failed", "error", err)
		}
	}
}

// writeError maps domain error kinds onto HTTP status codes. Infrastructure
// failures hide their detail from the client.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	var status int
	switch kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindAuthorization:
		status = http.StatusForbidden
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindState, domain.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusServiceUnavailable
	}

	msg := err.Error()
	if kind == domain.KindInfrastructure {
		logger.Error("request failed", "error", err)
		msg = "service temporarily unavailable"
	}

	writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validationf("invalid request body")
	}
	return nil
}
