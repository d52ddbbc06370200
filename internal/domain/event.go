package domain

import (
	"context"
	"math"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusOpen      EventStatus = "OPEN"
	EventStatusClosed    EventStatus = "CLOSED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusOpen, EventStatusClosed, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// Event is a capacity-limited, optionally paid event hosted by a user.
// ParticipantCount is maintained by the capacity ledger only.
// swagger:model Event
type Event struct {
	ID               string      `json:"id"`
	HostID           string      `json:"hostId"`
	Name             string      `json:"name"`
	Date             time.Time   `json:"date"`
	Fee              float64     `json:"fee"`
	MaxParticipants  int         `json:"maxParticipants"`
	ParticipantCount int         `json:"participantCount"`
	Status           EventStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// NewEvent returns an OPEN event with no participants. ID is typically set by the repository on create.
func NewEvent(hostID, name string, date time.Time, fee float64, maxParticipants int, now time.Time) *Event {
	return &Event{
		HostID:          hostID,
		Name:            name,
		Date:            date,
		Fee:             fee,
		MaxParticipants: maxParticipants,
		Status:          EventStatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasStarted reports whether the event's scheduled time is not in the future relative to now.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.Date.After(now)
}

// FeeMinorUnits converts the fee into integer minor currency units (fee × 100).
func (e *Event) FeeMinorUnits() int64 {
	return int64(math.Round(e.Fee * 100))
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
}

// CapacityLedger owns the participant counter of every event.
// Admit increments the counter only while it is below the event's maximum, as one indivisible
// step, and returns the new count. It returns ErrCapacityExceeded when the bound is reached.
type CapacityLedger interface {
	Admit(ctx context.Context, eventID string) (int, error)
}

// CreateEventInput is the validated payload for a new event.
type CreateEventInput struct {
	Name            string
	Date            time.Time
	Fee             float64
	MaxParticipants int
}

// HostService defines the operations hosts perform on their own events.
type HostService interface {
	CreateEvent(ctx context.Context, caller Caller, in CreateEventInput) (*Event, error)
	UpdateEventStatus(ctx context.Context, caller Caller, eventID string, status EventStatus) (*Event, error)
}
