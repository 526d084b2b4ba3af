package models

import "time"

// Notification is a row in the user's inbox. Delivery is best-effort and
// strictly post-commit; a lost notification never rolls back a reservation.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	Category  string    `json:"category"` // reservation, admin, other
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
