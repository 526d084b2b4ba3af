package service

import (
	"context"
	"fmt"
	"time"

	"parkhub/internal/domain"
	"parkhub/internal/events"
	"parkhub/internal/metrics"
	"parkhub/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper completes reservations whose window has passed. It runs on a
// cron schedule and uses the same status-guarded update as the caller
// facing transitions, so a racing cancel always wins cleanly.
type Sweeper struct {
	store    domain.Store
	queue    domain.Queue
	eventBus domain.EventPublisher
	sm       *StateMachine
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger
}

func NewSweeper(store domain.Store, queue domain.Queue, eventBus domain.EventPublisher, schedule string, logger *zerolog.Logger) *Sweeper {
	if schedule == "" {
		schedule = "@every 5m"
	}
	return &Sweeper{
		store:    store,
		queue:    queue,
		eventBus: eventBus,
		sm:       NewStateMachine(),
		schedule: schedule,
		log:      logger.With().Str("component", "sweeper").Logger(),
	}
}

// Start schedules the sweep. The returned error covers schedule parsing only.
func (s *Sweeper) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if n, err := s.Sweep(ctx); err != nil {
			s.log.Error().Err(err).Msg("sweep failed")
		} else if n > 0 {
			s.log.Info().Int("completed", n).Msg("sweep finished")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweeper schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("sweeper started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to return.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Sweep flips expired active reservations to completed and reports how
// many it completed. Rows that moved concurrently are skipped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	expired, err := s.store.ListExpiredActive(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired reservations: %w", err)
	}

	completed := 0
	for _, r := range expired {
		target, err := s.sm.Next(r.Status, EventComplete)
		if err != nil {
			continue
		}

		if err := s.store.UpdateReservationStatusGuarded(ctx, r.ID, r.Status, target); err != nil {
			s.log.Warn().Err(err).Int64("reservation_id", r.ID).Msg("skipping concurrent transition")
			metrics.IncReservation(string(EventComplete), "conflict_or_error")
			continue
		}
		metrics.IncReservation(string(EventComplete), "ok")
		completed++

		r.Status = target
		if err := s.eventBus.PublishJSON(events.EventReservationCompleted, events.ReservationEventPayload{
			ReservationID: r.ID,
			Code:          r.Code,
			UserID:        r.UserID,
			SlotID:        r.SlotID,
			VehicleID:     r.VehicleID,
			Status:        r.Status,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			ChangedByRole: models.RoleSystem,
		}); err != nil {
			s.log.Error().Err(err).Msg("failed to publish completion event")
		}

		task := &models.DispatchTask{
			UserID:     r.UserID,
			Message:    fmt.Sprintf("Reservation %s has completed.", r.Code),
			Category:   models.NotifyCategoryReservation,
			EnqueuedAt: time.Now().UTC(),
		}
		if err := s.queue.Enqueue(ctx, task); err != nil {
			s.log.Error().Err(err).Int64("user_id", r.UserID).Msg("failed to enqueue notification")
		}
	}

	return completed, nil
}
