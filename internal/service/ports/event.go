package ports

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Event, error)
	// UpdateStatus is a compare-and-set on the status column. It returns
	// domain.ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.EventStatus) error
	// Delete removes the event together with its proposals and bookings.
	Delete(ctx context.Context, id string) error
}
