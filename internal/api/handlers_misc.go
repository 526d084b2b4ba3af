package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parkhub/internal/models"
)

type vehicleRequest struct {
	Plate string `json:"plate"`
	Type  string `json:"type"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
}

func (s *Server) handleRegisterVehicle(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var body vehicleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	vehicle := &models.Vehicle{
		Plate: body.Plate,
		Type:  body.Type,
		Brand: body.Brand,
		Model: body.Model,
		Color: body.Color,
	}

	if err := s.vehicles.Register(r.Context(), claims.UserID, vehicle); err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	vehicles, err := s.vehicles.ListOwn(r.Context(), claims.UserID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := s.notifications.Inbox(r.Context(), claims.UserID, limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := s.notifications.MarkRead(r.Context(), claims.UserID, pathID(r)); err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
