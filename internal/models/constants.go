package models

// Reservation statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusRevoked   = "revoked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Caller roles. Role checks happen once, at the transition boundary.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"

	// RoleSystem is internal-only: the completion sweeper acts with it.
	// It is never a valid token role.
	RoleSystem = "system"
)

// Slot types.
const (
	SlotTypeStandard = "standard"
	SlotTypeHandicap = "handicap"
	SlotTypeElectric = "electric"
	SlotTypeCompact  = "compact"
)

// Administrative slot statuses. Independent of reservation occupancy:
// a slot can be "available" while holding an active reservation. Only
// "maintenance" blocks new reservations.
const (
	SlotStatusAvailable   = "available"
	SlotStatusOccupied    = "occupied"
	SlotStatusReserved    = "reserved"
	SlotStatusMaintenance = "maintenance"
)

// Vehicle types.
const (
	VehicleTypeCar        = "car"
	VehicleTypeMotorcycle = "motorcycle"
	VehicleTypeTruck      = "truck"
	VehicleTypeBus        = "bus"
)

// Notification categories.
const (
	NotifyCategoryReservation = "reservation"
	NotifyCategoryAdmin       = "admin"
	NotifyCategoryOther       = "other"
)

const (
	// DefaultPageSize applies when a list request carries no explicit limit.
	DefaultPageSize = 20

	// MaxPageSize caps a caller-supplied limit.
	MaxPageSize = 100

	// DispatchQueueSize bounds the in-memory notification queue.
	DispatchQueueSize = 1000
)

// IsLiveStatus reports whether a reservation in this status blocks
// overlapping bookings on the same slot.
func IsLiveStatus(status string) bool {
	return status == StatusPending || status == StatusActive
}

// IsTerminalStatus reports whether no further transition can leave this status.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusRevoked, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ValidRole reports whether the role belongs to the closed enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// ValidSlotType reports whether the slot type is known.
func ValidSlotType(t string) bool {
	switch t {
	case SlotTypeStandard, SlotTypeHandicap, SlotTypeElectric, SlotTypeCompact:
		return true
	}
	return false
}

// ValidSlotStatus reports whether the administrative status is known.
func ValidSlotStatus(s string) bool {
	switch s {
	case SlotStatusAvailable, SlotStatusOccupied, SlotStatusReserved, SlotStatusMaintenance:
		return true
	}
	return false
}

// ValidVehicleType reports whether the vehicle type is known.
func ValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeCar, VehicleTypeMotorcycle, VehicleTypeTruck, VehicleTypeBus:
		return true
	}
	return false
}

// ValidNotifyCategory reports whether the notification category is known.
func ValidNotifyCategory(c string) bool {
	switch c {
	case NotifyCategoryReservation, NotifyCategoryAdmin, NotifyCategoryOther:
		return true
	}
	return false
}
