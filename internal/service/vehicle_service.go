package service

import (
	"context"
	"strings"

	"parkhub/internal/domain"
	"parkhub/internal/models"

	"github.com/rs/zerolog"
)

// Vehicles keeps the narrow vehicle collaborator: register and list for
// the owner, existence checks for the reservation flow.
type Vehicles struct {
	store domain.Store
	log   zerolog.Logger
}

func NewVehicles(store domain.Store, logger *zerolog.Logger) *Vehicles {
	return &Vehicles{
		store: store,
		log:   logger.With().Str("component", "vehicle_service").Logger(),
	}
}

func (s *Vehicles) Register(ctx context.Context, ownerID int64, vehicle *models.Vehicle) error {
	vehicle.Plate = strings.ToUpper(strings.TrimSpace(vehicle.Plate))
	if vehicle.Plate == "" {
		return Validationf("plate is required")
	}
	if vehicle.Type == "" {
		vehicle.Type = models.VehicleTypeCar
	}
	if !models.ValidVehicleType(vehicle.Type) {
		return Validationf("unknown vehicle type %q", vehicle.Type)
	}

	vehicle.OwnerID = ownerID
	return s.store.CreateVehicle(ctx, vehicle)
}

func (s *Vehicles) ListOwn(ctx context.Context, ownerID int64) ([]*models.Vehicle, error) {
	return s.store.ListVehiclesByOwner(ctx, ownerID)
}
