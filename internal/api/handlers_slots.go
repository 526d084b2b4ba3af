package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parkhub/internal/models"
)

type slotRequest struct {
	SlotNumber *string `json:"slot_number"`
	Floor      *string `json:"floor"`
	Type       *string `json:"type"`
	Status     *string `json:"status"`
}

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var body slotRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	slot := &models.ParkingSlot{}
	if body.SlotNumber != nil {
		slot.SlotNumber = *body.SlotNumber
	}
	if body.Floor != nil {
		slot.Floor = *body.Floor
	}
	if body.Type != nil {
		slot.Type = *body.Type
	}
	if body.Status != nil {
		slot.Status = *body.Status
	}

	if err := s.slots.Create(r.Context(), claims.Role, slot); err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, slot)
}

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	slots, err := s.slots.List(r.Context(), models.SlotFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Floor:  q.Get("floor"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (s *Server) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := s.slots.Get(r.Context(), pathID(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, slot)
}

func (s *Server) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var body slotRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	slot, err := s.slots.Update(r.Context(), claims.Role, pathID(r), models.SlotUpdate{
		SlotNumber: body.SlotNumber,
		Floor:      body.Floor,
		Type:       body.Type,
		Status:     body.Status,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, slot)
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := s.slots.Delete(r.Context(), claims.Role, pathID(r)); err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
