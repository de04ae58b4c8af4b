package ports

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]*domain.Booking, error)
}
