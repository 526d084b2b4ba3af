package models

import "time"

// Reservation is a user's claim on a slot for a half-open time window
// [StartTime, EndTime). Rows are never deleted; cancellation and revocation
// are terminal statuses, kept for audit.
type Reservation struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	UserID    int64     `json:"user_id"`
	SlotID    int64     `json:"slot_id"`
	VehicleID int64     `json:"vehicle_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"` // pending, active, revoked, cancelled, completed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReservationFilter narrows reservation listings. Zero values mean "no filter".
type ReservationFilter struct {
	UserID int64
	SlotID int64
	Status string
	Limit  int
	Offset int
}

// Overlaps reports whether two half-open windows intersect.
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
