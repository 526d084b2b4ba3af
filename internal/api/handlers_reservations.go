package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"parkhub/internal/models"

	"github.com/gorilla/mux"
)

type createReservationRequest struct {
	SlotID    int64     `json:"slot_id"`
	VehicleID int64     `json:"vehicle_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var body createReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reservation, err := s.reservations.Reserve(r.Context(), claims.UserID, body.SlotID, body.VehicleID, body.StartTime, body.EndTime)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reservation)
}

func (s *Server) handleListOwnReservations(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	filter := reservationFilterFromQuery(r)

	reservations, err := s.reservations.ListOwn(r.Context(), claims.UserID, filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (s *Server) handleListAllReservations(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	filter := reservationFilterFromQuery(r)

	reservations, err := s.reservations.ListAll(r.Context(), claims.Role, filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

func (s *Server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	id := pathID(r)

	reservation, err := s.reservations.Get(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reservation)
}

func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	reservation, err := s.reservations.Cancel(r.Context(), claims.UserID, claims.Role, pathID(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reservation)
}

func (s *Server) handleAcknowledgeReservation(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	reservation, err := s.reservations.Acknowledge(r.Context(), claims.UserID, claims.Role, pathID(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reservation)
}

func (s *Server) handleRevokeReservation(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	reservation, err := s.reservations.Revoke(r.Context(), claims.UserID, claims.Role, pathID(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reservation)
}

func (s *Server) handleExportReservations(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	from, err := parseDateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, name, err := s.exporter.ReservationsWorkbook(r.Context(), claims.Role, from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func reservationFilterFromQuery(r *http.Request) models.ReservationFilter {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	slotID, _ := strconv.ParseInt(q.Get("slot_id"), 10, 64)

	return models.ReservationFilter{
		Status: q.Get("status"),
		SlotID: slotID,
		Limit:  limit,
		Offset: offset,
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, errMissingParam(name)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errBadDate(name)
	}
	return t, nil
}
