package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parkhub/internal/database"
	"parkhub/internal/domain"
	"parkhub/internal/events"
	"parkhub/internal/metrics"
	"parkhub/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Reservations orchestrates validation, authorization, the atomic reserve
// and the status transitions. It is the only component that knows the
// caller's identity and role.
type Reservations struct {
	store    domain.Store
	queue    domain.Queue
	eventBus domain.EventPublisher
	sm       *StateMachine
	log      zerolog.Logger
}

func NewReservations(store domain.Store, queue domain.Queue, eventBus domain.EventPublisher, logger *zerolog.Logger) *Reservations {
	return &Reservations{
		store:    store,
		queue:    queue,
		eventBus: eventBus,
		sm:       NewStateMachine(),
		log:      logger.With().Str("component", "reservation_service").Logger(),
	}
}

// Reserve creates a pending reservation. The conflict check and the
// insert run as one unit in the store; overlap surfaces as
// database.ErrNotAvailable.
func (s *Reservations) Reserve(ctx context.Context, userID int64, slotID, vehicleID int64, start, end time.Time) (*models.Reservation, error) {
	if slotID <= 0 {
		return nil, Validationf("slot id is required")
	}
	if vehicleID <= 0 {
		return nil, Validationf("vehicle id is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, Validationf("start and end times are required")
	}
	if !start.Before(end) {
		return nil, Validationf("end time must be after start time")
	}

	owns, err := s.store.VehicleExists(ctx, vehicleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check vehicle: %w", err)
	}
	if !owns {
		return nil, database.ErrNotFound
	}

	slot, err := s.store.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status == models.SlotStatusMaintenance {
		return nil, database.ErrNotAvailable
	}

	reservation := &models.Reservation{
		Code:      newReservationCode(),
		UserID:    userID,
		SlotID:    slotID,
		VehicleID: vehicleID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}

	if err := s.store.CreateReservationWithLock(ctx, reservation); err != nil {
		metrics.IncReservation("reserve", "conflict_or_error")
		return nil, err
	}
	metrics.IncReservation("reserve", "ok")

	s.publishEvent(events.EventReservationCreated, reservation, userID, models.RoleUser)
	s.notify(ctx, reservation.UserID, fmt.Sprintf(
		"Reservation %s for slot %s is pending (%s - %s).",
		reservation.Code, slot.SlotNumber,
		reservation.StartTime.Format(time.RFC3339), reservation.EndTime.Format(time.RFC3339)))

	return reservation, nil
}

// Get returns a reservation visible to the actor. Owners see their own;
// admin and staff see all. Anyone else gets NotFound, never Forbidden,
// so reservation ids do not leak.
func (s *Reservations) Get(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error) {
	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != actorID && !IsManager(actorRole) {
		return nil, database.ErrNotFound
	}
	return reservation, nil
}

// ListOwn lists the caller's reservations.
func (s *Reservations) ListOwn(ctx context.Context, userID int64, filter models.ReservationFilter) ([]*models.Reservation, error) {
	filter.UserID = userID
	return s.store.ListReservations(ctx, filter)
}

// ListAll lists reservations across all users. Admin and staff only.
func (s *Reservations) ListAll(ctx context.Context, actorRole string, filter models.ReservationFilter) ([]*models.Reservation, error) {
	if !IsManager(actorRole) {
		return nil, ErrForbidden
	}
	return s.store.ListReservations(ctx, filter)
}

// Acknowledge moves a pending reservation to active.
func (s *Reservations) Acknowledge(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error) {
	return s.transition(ctx, actorID, actorRole, id, EventAcknowledge, events.EventReservationAcknowledged,
		"Reservation %s has been acknowledged.")
}

// Revoke moves a pending reservation to revoked.
func (s *Reservations) Revoke(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error) {
	return s.transition(ctx, actorID, actorRole, id, EventRevoke, events.EventReservationRevoked,
		"Reservation %s has been revoked.")
}

// Cancel moves a pending or active reservation to cancelled. Owner only;
// a non-owner observes NotFound.
func (s *Reservations) Cancel(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error) {
	return s.transition(ctx, actorID, actorRole, id, EventCancel, events.EventReservationCancelled,
		"Reservation %s has been cancelled.")
}

func (s *Reservations) transition(ctx context.Context, actorID int64, actorRole string, id int64, event Event, eventType, messageFormat string) (*models.Reservation, error) {
	reservation, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.sm.Authorize(event, actorID, actorRole, reservation.UserID); err != nil {
		if event == EventCancel {
			// Cancellation by a stranger reads as NotFound.
			return nil, database.ErrNotFound
		}
		return nil, err
	}

	target, err := s.sm.Next(reservation.Status, event)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateReservationStatusGuarded(ctx, id, reservation.Status, target); err != nil {
		metrics.IncReservation(string(event), "conflict_or_error")
		return nil, err
	}
	metrics.IncReservation(string(event), "ok")

	reservation.Status = target
	s.publishEvent(eventType, reservation, actorID, actorRole)
	s.notify(ctx, reservation.UserID, fmt.Sprintf(messageFormat, reservation.Code))

	return reservation, nil
}

// publishEvent and notify run strictly after the state change committed;
// their failures are logged and never affect the outcome.
func (s *Reservations) publishEvent(eventType string, r *models.Reservation, actorID int64, actorRole string) {
	err := s.eventBus.PublishJSON(eventType, events.ReservationEventPayload{
		ReservationID: r.ID,
		Code:          r.Code,
		UserID:        r.UserID,
		SlotID:        r.SlotID,
		VehicleID:     r.VehicleID,
		Status:        r.Status,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		ChangedBy:     actorID,
		ChangedByRole: actorRole,
	})
	if err != nil {
		s.log.Error().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

func (s *Reservations) notify(ctx context.Context, userID int64, message string) {
	err := s.queue.Enqueue(ctx, &models.DispatchTask{
		UserID:     userID,
		Message:    message,
		Category:   models.NotifyCategoryReservation,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to enqueue notification")
	}
}

func newReservationCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RSV-" + id[:10]
}
