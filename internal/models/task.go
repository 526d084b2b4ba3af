package models

import "time"

// DispatchTask is one pending notification delivery. Tasks travel through
// the dispatch queue (Redis list or in-memory fallback) and end up as
// notification rows.
type DispatchTask struct {
	UserID     int64     `json:"user_id"`
	Message    string    `json:"message"`
	Category   string    `json:"category"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
