package service

import (
	"context"
	"strings"

	"parkhub/internal/domain"
	"parkhub/internal/models"

	"github.com/rs/zerolog"
)

// Slots manages the parking slot inventory. Reads are public; mutations
// require the admin role.
type Slots struct {
	store domain.Store
	log   zerolog.Logger
}

func NewSlots(store domain.Store, logger *zerolog.Logger) *Slots {
	return &Slots{
		store: store,
		log:   logger.With().Str("component", "slot_service").Logger(),
	}
}

func (s *Slots) Create(ctx context.Context, actorRole string, slot *models.ParkingSlot) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}

	slot.SlotNumber = strings.TrimSpace(slot.SlotNumber)
	if slot.SlotNumber == "" {
		return Validationf("slot number is required")
	}
	if slot.Type == "" {
		slot.Type = models.SlotTypeStandard
	}
	if !models.ValidSlotType(slot.Type) {
		return Validationf("unknown slot type %q", slot.Type)
	}
	if slot.Status == "" {
		slot.Status = models.SlotStatusAvailable
	}
	if !models.ValidSlotStatus(slot.Status) {
		return Validationf("unknown slot status %q", slot.Status)
	}

	return s.store.CreateSlot(ctx, slot)
}

func (s *Slots) Get(ctx context.Context, id int64) (*models.ParkingSlot, error) {
	return s.store.GetSlot(ctx, id)
}

func (s *Slots) List(ctx context.Context, filter models.SlotFilter) ([]*models.ParkingSlot, error) {
	if filter.Status != "" && !models.ValidSlotStatus(filter.Status) {
		return nil, Validationf("unknown slot status %q", filter.Status)
	}
	if filter.Type != "" && !models.ValidSlotType(filter.Type) {
		return nil, Validationf("unknown slot type %q", filter.Type)
	}
	return s.store.ListSlots(ctx, filter)
}

func (s *Slots) Update(ctx context.Context, actorRole string, id int64, update models.SlotUpdate) (*models.ParkingSlot, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	if update.SlotNumber != nil {
		trimmed := strings.TrimSpace(*update.SlotNumber)
		if trimmed == "" {
			return nil, Validationf("slot number cannot be empty")
		}
		update.SlotNumber = &trimmed
	}
	if update.Type != nil && !models.ValidSlotType(*update.Type) {
		return nil, Validationf("unknown slot type %q", *update.Type)
	}
	if update.Status != nil && !models.ValidSlotStatus(*update.Status) {
		return nil, Validationf("unknown slot status %q", *update.Status)
	}
	if update.SlotNumber == nil && update.Floor == nil && update.Type == nil && update.Status == nil {
		return nil, Validationf("no fields to update")
	}

	if err := s.store.UpdateSlot(ctx, id, update); err != nil {
		return nil, err
	}
	return s.store.GetSlot(ctx, id)
}

// Delete removes a slot. The store blocks deletion while pending or
// active reservations reference it.
func (s *Slots) Delete(ctx context.Context, actorRole string, id int64) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	return s.store.DeleteSlot(ctx, id)
}
