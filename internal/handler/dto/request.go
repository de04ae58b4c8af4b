package dto

import (
	"encoding/json"
)

type RegisterUserRequest struct {
	Email          string `json:"email" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Role           string `json:"role" binding:"required"`
	TelegramChatID *int64 `json:"telegramChatId"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateEventRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	EventDate    string `json:"eventDate" binding:"required"`
	EndDate      string `json:"endDate"`
	Location     string `json:"location"`
	LocationType string `json:"locationType"`
	AudienceSize int    `json:"audienceSize"`
	Budget       Price  `json:"budget"`
}

type CreateProposalRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Items       json.RawMessage `json:"items"`
	TotalPrice  *Price          `json:"totalPrice"`
	ValidUntil  string          `json:"validUntil"`
}

// PatchProposalRequest serves two callers: staff editing the body, and the
// customer answering with status (and feedback when rejecting).
type PatchProposalRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Items       json.RawMessage `json:"items"`
	TotalPrice  *Price          `json:"totalPrice"`
	ValidUntil  *string         `json:"validUntil"`
	Status      *string         `json:"status"`
	Feedback    *string         `json:"feedback"`
}

func (r PatchProposalRequest) IsDecision() bool {
	return r.Status != nil
}

type CreateBookingRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	EventID   string `json:"eventId" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	Notes     string `json:"notes"`
}

type ServiceRequest struct {
	Title     *string `json:"title"`
	Type      *string `json:"type"`
	BasePrice *Price  `json:"basePrice"`
	Available *bool   `json:"available"`
}
