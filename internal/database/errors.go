package database

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAvailable is returned when a requested window overlaps a live
	// reservation on the same slot.
	ErrNotAvailable = errors.New("slot not available for the requested window")

	// ErrConcurrentModification is returned when a status-guarded update
	// affects no rows because the row's status moved since it was read.
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrDuplicateSlot is returned when a slot number is already taken.
	ErrDuplicateSlot = errors.New("slot number already exists")

	// ErrDuplicatePlate is returned when a vehicle plate is already registered.
	ErrDuplicatePlate = errors.New("vehicle plate already registered")

	// ErrSlotInUse blocks deletion of a slot referenced by live reservations.
	ErrSlotInUse = errors.New("slot has live reservations")
)
