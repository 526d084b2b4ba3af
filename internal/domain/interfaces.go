package domain

import (
	"context"
	"time"

	"parkhub/internal/models"
)

type Store interface {
	CreateReservationWithLock(ctx context.Context, reservation *models.Reservation) error
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	HasConflict(ctx context.Context, slotID int64, start, end time.Time, excludeReservationID int64) (bool, error)
	UpdateReservationStatusGuarded(ctx context.Context, id int64, from, to string) error
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error)
	ListReservationsInWindow(ctx context.Context, from, to time.Time) ([]*models.Reservation, error)
	ListExpiredActive(ctx context.Context, now time.Time) ([]*models.Reservation, error)

	CreateSlot(ctx context.Context, slot *models.ParkingSlot) error
	GetSlot(ctx context.Context, id int64) (*models.ParkingSlot, error)
	ListSlots(ctx context.Context, filter models.SlotFilter) ([]*models.ParkingSlot, error)
	UpdateSlot(ctx context.Context, id int64, update models.SlotUpdate) error
	DeleteSlot(ctx context.Context, id int64) error

	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	VehicleExists(ctx context.Context, vehicleID, ownerID int64) (bool, error)
	ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]*models.Vehicle, error)

	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID int64, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) error
}

// Queue carries dispatch tasks between the reservation services and the
// delivery worker. Implementations: Redis list, in-memory channel, and a
// failover wrapper over both.
type Queue interface {
	Enqueue(ctx context.Context, task *models.DispatchTask) error
	// Dequeue blocks up to timeout and returns nil when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*models.DispatchTask, error)
	DeadLetter(ctx context.Context, task *models.DispatchTask) error
	Ping(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type ReservationService interface {
	Reserve(ctx context.Context, userID int64, slotID, vehicleID int64, start, end time.Time) (*models.Reservation, error)
	Get(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error)
	ListOwn(ctx context.Context, userID int64, filter models.ReservationFilter) ([]*models.Reservation, error)
	ListAll(ctx context.Context, actorRole string, filter models.ReservationFilter) ([]*models.Reservation, error)
	Acknowledge(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error)
	Revoke(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error)
	Cancel(ctx context.Context, actorID int64, actorRole string, id int64) (*models.Reservation, error)
}

type SlotService interface {
	Create(ctx context.Context, actorRole string, slot *models.ParkingSlot) error
	Get(ctx context.Context, id int64) (*models.ParkingSlot, error)
	List(ctx context.Context, filter models.SlotFilter) ([]*models.ParkingSlot, error)
	Update(ctx context.Context, actorRole string, id int64, update models.SlotUpdate) (*models.ParkingSlot, error)
	Delete(ctx context.Context, actorRole string, id int64) error
}

type VehicleService interface {
	Register(ctx context.Context, ownerID int64, vehicle *models.Vehicle) error
	ListOwn(ctx context.Context, ownerID int64) ([]*models.Vehicle, error)
}

type NotificationService interface {
	Inbox(ctx context.Context, userID int64, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) error
}

type Exporter interface {
	ReservationsWorkbook(ctx context.Context, actorRole string, from, to time.Time) ([]byte, string, error)
}
