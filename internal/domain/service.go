package domain

import "time"

// Service is a bookable offering published by a provider.
type Service struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"provider_id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	BasePrice  float64   `json:"base_price"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Service) OwnerID() string { return s.ProviderID }

type ServiceInput struct {
	Title     *string
	Type      *string
	BasePrice *float64
	Available *bool
}
