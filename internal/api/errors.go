package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"parkhub/internal/database"
	"parkhub/internal/service"
)

func errMissingParam(name string) error {
	return fmt.Errorf("%s is required", name)
}

func errBadDate(name string) error {
	return fmt.Errorf("invalid %s; expected RFC3339 or YYYY-MM-DD", name)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError translates the error taxonomy to HTTP statuses:
// validation 400, not found 404, forbidden 403, conflicts 409,
// everything else a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrDuplicateSlot):
		writeError(w, http.StatusBadRequest, "slot number already exists")
	case errors.Is(err, database.ErrDuplicatePlate):
		writeError(w, http.StatusBadRequest, "plate already registered")
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, database.ErrNotAvailable):
		writeError(w, http.StatusConflict, "slot is not available for the requested window")
	case errors.Is(err, database.ErrConcurrentModification):
		writeError(w, http.StatusConflict, "reservation status changed concurrently")
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrSlotInUse):
		writeError(w, http.StatusConflict, "slot has live reservations")
	default:
		s.log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
