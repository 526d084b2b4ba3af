package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventReservationCreated      = "reservation_created"
	EventReservationAcknowledged = "reservation_acknowledged"
	EventReservationRevoked      = "reservation_revoked"
	EventReservationCancelled    = "reservation_cancelled"
	EventReservationCompleted    = "reservation_completed"
)

// ReservationEventPayload is the minimal reservation snapshot handed to
// event consumers.
type ReservationEventPayload struct {
	ReservationID int64     `json:"reservation_id"`
	Code          string    `json:"code"`
	UserID        int64     `json:"user_id"`
	SlotID        int64     `json:"slot_id"`
	VehicleID     int64     `json:"vehicle_id"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ChangedBy     int64     `json:"changed_by,omitempty"`
	ChangedByRole string    `json:"changed_by_role,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
