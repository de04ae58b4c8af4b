package ports

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type ServiceRepo interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	ListAvailable(ctx context.Context) ([]*domain.Service, error)
	ListByProvider(ctx context.Context, providerID string) ([]*domain.Service, error)
}
