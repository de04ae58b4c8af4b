package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusDeclined,
		BookingStatusCancelled, BookingStatusCompleted:
		return st, true
	}
	return "", false
}

var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusDeclined, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusDeclined:  {},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, st := range bookingTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	ID         string        `json:"id"`
	EventID    string        `json:"event_id"`
	ServiceID  string        `json:"service_id"`
	ProviderID string        `json:"provider_id"`
	CustomerID string        `json:"customer_id"`
	StartTime  time.Time     `json:"start_time"`
	Status     BookingStatus `json:"status"`
	// AgreePrice is the service base price captured at creation. It is
	// never recomputed.
	AgreePrice          float64   `json:"agree_price"`
	SpecialInstructions string    `json:"special_instructions"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CreateBookingInput struct {
	EventID   string
	ServiceID string
	StartTime time.Time
	Notes     string
}
