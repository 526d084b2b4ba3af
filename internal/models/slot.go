package models

import "time"

// ParkingSlot is an addressable parking space. Status is administrative
// metadata set by admins; Occupied is derived from live reservations at
// read time and never stored.
type ParkingSlot struct {
	ID         int64     `json:"id"`
	SlotNumber string    `json:"slot_number"`
	Floor      string    `json:"floor"`
	Type       string    `json:"type"`   // standard, handicap, electric, compact
	Status     string    `json:"status"` // available, occupied, reserved, maintenance
	Occupied   bool      `json:"occupied"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SlotFilter narrows slot listings. Zero values mean "no filter".
type SlotFilter struct {
	Status string
	Type   string
	Floor  string
	Limit  int
	Offset int
}

// SlotUpdate carries a partial update; nil fields are left untouched.
type SlotUpdate struct {
	SlotNumber *string
	Floor      *string
	Type       *string
	Status     *string
}
