package domain

import "time"

type NotificationType string

const (
	NotificationProposalReceived NotificationType = "proposal_received"
	NotificationProposalAccepted NotificationType = "proposal_accepted"
	NotificationProposalRejected NotificationType = "proposal_rejected"
	NotificationBookingReceived  NotificationType = "booking_received"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingDeclined  NotificationType = "booking_declined"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationEventUpdated     NotificationType = "event_updated"
)

type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RedirectURL *string          `json:"redirect_url,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (n *Notification) OwnerID() string { return n.UserID }
