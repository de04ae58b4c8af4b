package domain

import "time"

type ActivityType string

const (
	ActivityEventCreated     ActivityType = "event_created"
	ActivityEventUpdate      ActivityType = "event_update"
	ActivityEventDeleted     ActivityType = "event_deleted"
	ActivityProposalCreated  ActivityType = "proposal_created"
	ActivityProposalUpdated  ActivityType = "proposal_updated"
	ActivityProposalSent     ActivityType = "proposal_sent"
	ActivityProposalAccepted ActivityType = "proposal_accepted"
	ActivityProposalRejected ActivityType = "proposal_rejected"
	ActivityProposalExpired  ActivityType = "proposal_expired"
	ActivityBookingCreated   ActivityType = "booking_created"
	ActivityBookingUpdate    ActivityType = "booking_update"
	ActivityServiceCreated   ActivityType = "service_created"
	ActivityServiceUpdated   ActivityType = "service_updated"
	ActivityUserRegistered   ActivityType = "user_registered"
	ActivityUserStatus       ActivityType = "user_status"
)

type EntityType string

const (
	EntityUser     EntityType = "user"
	EntityEvent    EntityType = "event"
	EntityProposal EntityType = "proposal"
	EntityBooking  EntityType = "booking"
	EntityService  EntityType = "service"
)

// Activity is an append-only audit record.
type Activity struct {
	ID           string       `json:"id"`
	ActorUserID  string       `json:"actor_user_id"`
	ActivityType ActivityType `json:"activity_type"`
	Description  string       `json:"description"`
	EntityID     string       `json:"entity_id"`
	EntityType   EntityType   `json:"entity_type"`
	Timestamp    time.Time    `json:"timestamp"`
}

type ActivityFilter struct {
	EntityType *EntityType
	EntityID   *string
	Limit      int
}
