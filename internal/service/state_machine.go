package service

import (
	"fmt"

	"parkhub/internal/models"
)

// Event names a reservation transition request.
type Event string

const (
	EventAcknowledge Event = "acknowledge"
	EventRevoke      Event = "revoke"
	EventCancel      Event = "cancel"
	EventComplete    Event = "complete"
)

// actorRule decides who may trigger a transition.
type actorRule int

const (
	// ruleManager requires the admin or staff role.
	ruleManager actorRule = iota
	// ruleOwner requires the caller to own the reservation.
	ruleOwner
	// ruleSystem is reserved for internal callers (the completion sweeper).
	ruleSystem
)

type transitionKey struct {
	from  string
	event Event
}

type transition struct {
	to   string
	rule actorRule
}

var transitions = map[transitionKey]transition{
	{models.StatusPending, EventAcknowledge}: {to: models.StatusActive, rule: ruleManager},
	{models.StatusPending, EventRevoke}:      {to: models.StatusRevoked, rule: ruleManager},
	{models.StatusPending, EventCancel}:      {to: models.StatusCancelled, rule: ruleOwner},
	{models.StatusActive, EventCancel}:       {to: models.StatusCancelled, rule: ruleOwner},
	{models.StatusActive, EventComplete}:     {to: models.StatusCompleted, rule: ruleSystem},
}

// StateMachine governs reservation status transitions and the
// authorization rule attached to each one.
type StateMachine struct{}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Next returns the target status for (current, event), or
// ErrInvalidTransition when the pair is not in the table.
func (m *StateMachine) Next(current string, event Event) (string, error) {
	t, ok := transitions[transitionKey{from: current, event: event}]
	if !ok {
		return "", fmt.Errorf("%w: %s is not allowed from %s", ErrInvalidTransition, event, current)
	}
	return t.to, nil
}

// Authorize checks the actor against the transition's rule. The rule is
// keyed by event alone; every (from, event) pair of one event shares it.
func (m *StateMachine) Authorize(event Event, actorID int64, actorRole string, ownerID int64) error {
	rule, ok := ruleFor(event)
	if !ok {
		return fmt.Errorf("%w: unknown event %s", ErrInvalidTransition, event)
	}

	switch rule {
	case ruleManager:
		if actorRole == models.RoleAdmin || actorRole == models.RoleStaff {
			return nil
		}
		return ErrForbidden
	case ruleOwner:
		if actorID == ownerID {
			return nil
		}
		return ErrForbidden
	case ruleSystem:
		if actorRole == models.RoleSystem {
			return nil
		}
		return ErrForbidden
	}
	return ErrForbidden
}

func ruleFor(event Event) (actorRule, bool) {
	for key, t := range transitions {
		if key.event == event {
			return t.rule, true
		}
	}
	return 0, false
}

// IsManager reports whether the role may see and manage all reservations.
func IsManager(role string) bool {
	return role == models.RoleAdmin || role == models.RoleStaff
}
