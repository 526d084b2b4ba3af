package models

import "time"

// Vehicle is owned by a user and referenced by reservations. Only existence
// and ownership matter to the reservation core; the rest is registry data.
type Vehicle struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Plate     string    `json:"plate"`
	Type      string    `json:"type"` // car, motorcycle, truck, bus
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
