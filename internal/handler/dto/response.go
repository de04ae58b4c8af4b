package dto

import (
	"time"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	Status          string  `json:"status"`
	LegacyProfileID *string `json:"legacyProfileId,omitempty"`
	TelegramChatID  *int64  `json:"telegramChatId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type EventResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customerId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	EventDate    string  `json:"eventDate"`
	EndDate      string  `json:"endDate"`
	Location     string  `json:"location"`
	LocationType string  `json:"locationType"`
	AudienceSize int     `json:"audienceSize"`
	Budget       float64 `json:"budget"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type ProposalItemResponse struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type ProposalResponse struct {
	ID          string                 `json:"id"`
	EventID     string                 `json:"eventId"`
	AdminID     string                 `json:"adminId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Items       []ProposalItemResponse `json:"items"`
	TotalPrice  float64                `json:"totalPrice"`
	ValidUntil  string                 `json:"validUntil"`
	Status      string                 `json:"status"`
	Feedback    *string                `json:"feedback,omitempty"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

type ServiceResponse struct {
	ID         string  `json:"id"`
	ProviderID string  `json:"providerId"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	BasePrice  float64 `json:"basePrice"`
	Available  bool    `json:"available"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type BookingResponse struct {
	ID                  string  `json:"id"`
	EventID             string  `json:"eventId"`
	ServiceID           string  `json:"serviceId"`
	ProviderID          string  `json:"providerId"`
	CustomerID          string  `json:"customerId"`
	StartTime           string  `json:"startTime"`
	Status              string  `json:"status"`
	AgreePrice          float64 `json:"agreePrice"`
	SpecialInstructions string  `json:"specialInstructions"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

type NotificationResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	RedirectURL *string `json:"redirectUrl,omitempty"`
	IsRead      bool    `json:"isRead"`
	CreatedAt   string  `json:"createdAt"`
}

type ActivityResponse struct {
	ID           string `json:"id"`
	ActorUserID  string `json:"actorUserId"`
	ActivityType string `json:"activityType"`
	Description  string `json:"description"`
	EntityID     string `json:"entityId"`
	EntityType   string `json:"entityType"`
	Timestamp    string `json:"timestamp"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		Status:          string(u.Status),
		LegacyProfileID: u.LegacyProfileID,
		TelegramChatID:  u.TelegramChatID,
		CreatedAt:       formatTime(u.CreatedAt),
	}
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		Name:         e.Name,
		Description:  e.Description,
		EventDate:    formatTime(e.EventDate),
		EndDate:      formatTime(e.EndDate),
		Location:     e.Location,
		LocationType: e.LocationType,
		AudienceSize: e.AudienceSize,
		Budget:       e.Budget,
		Status:       string(e.Status),
		CreatedAt:    formatTime(e.CreatedAt),
		UpdatedAt:    formatTime(e.UpdatedAt),
	}
}

func ToProposalResponse(p *domain.Proposal) ProposalResponse {
	items := make([]ProposalItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, ProposalItemResponse{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	return ProposalResponse{
		ID:          p.ID,
		EventID:     p.EventID,
		AdminID:     p.AdminID,
		Title:       p.Title,
		Description: p.Description,
		Items:       items,
		TotalPrice:  p.TotalPrice,
		ValidUntil:  formatTime(p.ValidUntil),
		Status:      string(p.Status),
		Feedback:    p.Feedback,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func ToServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:         s.ID,
		ProviderID: s.ProviderID,
		Title:      s.Title,
		Type:       s.Type,
		BasePrice:  s.BasePrice,
		Available:  s.Available,
		CreatedAt:  formatTime(s.CreatedAt),
		UpdatedAt:  formatTime(s.UpdatedAt),
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		EventID:             b.EventID,
		ServiceID:           b.ServiceID,
		ProviderID:          b.ProviderID,
		CustomerID:          b.CustomerID,
		StartTime:           formatTime(b.StartTime),
		Status:              string(b.Status),
		AgreePrice:          b.AgreePrice,
		SpecialInstructions: b.SpecialInstructions,
		CreatedAt:           formatTime(b.CreatedAt),
		UpdatedAt:           formatTime(b.UpdatedAt),
	}
}

func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RedirectURL: n.RedirectURL,
		IsRead:      n.IsRead,
		CreatedAt:   formatTime(n.CreatedAt),
	}
}

func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		ActorUserID:  a.ActorUserID,
		ActivityType: string(a.ActivityType),
		Description:  a.Description,
		EntityID:     a.EntityID,
		EntityType:   string(a.EntityType),
		Timestamp:    formatTime(a.Timestamp),
	}
}

// MapSlice converts a list of domain values with one of the To* functions.
func MapSlice[T any, R any](in []*T, fn func(*T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
