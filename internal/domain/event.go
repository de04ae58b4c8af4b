package domain

import "time"

type EventStatus string

const (
	EventStatusPending    EventStatus = "pending"
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

func ParseEventStatus(s string) (EventStatus, bool) {
	switch st := EventStatus(s); st {
	case EventStatusPending, EventStatusConfirmed, EventStatusInProgress,
		EventStatusCompleted, EventStatusCancelled:
		return st, true
	}
	return "", false
}

// eventTransitions is the complete edge set of the event state machine.
// Events only move forward; cancelled is reachable from every non-terminal state.
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusPending:    {EventStatusConfirmed, EventStatusCancelled},
	EventStatusConfirmed:  {EventStatusInProgress, EventStatusCancelled},
	EventStatusInProgress: {EventStatusCompleted, EventStatusCancelled},
	EventStatusCompleted:  {},
	EventStatusCancelled:  {},
}

func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, st := range eventTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

func (s EventStatus) IsTerminal() bool {
	return len(eventTransitions[s]) == 0
}

type Event struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customer_id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	EventDate    time.Time   `json:"event_date"`
	EndDate      time.Time   `json:"end_date"`
	Location     string      `json:"location"`
	LocationType string      `json:"location_type"`
	AudienceSize int         `json:"audience_size"`
	Budget       float64     `json:"budget"`
	Status       EventStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OwnerID implements the ownership contract used by the guard.
func (e *Event) OwnerID() string { return e.CustomerID }

type CreateEventInput struct {
	Name         string
	Description  string
	EventDate    time.Time
	EndDate      *time.Time
	Location     string
	LocationType string
	AudienceSize int
	Budget       float64
}
