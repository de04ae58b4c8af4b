package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// CatalogService manages the services providers publish. Price edits
// only affect future bookings.
type CatalogService struct {
	repo       ports.ServiceRepo
	guard      ports.Guard
	dispatcher ports.EffectDispatcher
	logger     logger.Logger
	now        func() time.Time
}

func NewCatalogService(
	repo ports.ServiceRepo,
	guard ports.Guard,
	dispatcher ports.EffectDispatcher,
	logger logger.Logger,
) *CatalogService {
	return &CatalogService{
		repo:       repo,
		guard:      guard,
		dispatcher: dispatcher,
		logger:     logger,
		now:        utcNow,
	}
}

func (s *CatalogService) Create(ctx context.Context, actor domain.Actor, input domain.ServiceInput) (*domain.Service, error) {
	if err := s.guard.CanPerform(actor, authz.ActionCreateService, nil); err != nil {
		return nil, err
	}
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.BasePrice == nil {
		return nil, fmt.Errorf("%w: base_price is required", domain.ErrValidation)
	}

	now := s.now()
	svc := &domain.Service{
		ID:         uuid.New().String(),
		ProviderID: actor.ID,
		Available:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := applyServiceInput(svc, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.logger.Info("service created",
		logger.String("service_id", svc.ID),
		logger.String("provider_id", actor.ID),
	)

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityServiceCreated, domain.EntityService, svc.ID,
		fmt.Sprintf("Service %q published at %.2f", svc.Title, svc.BasePrice), now))
	s.dispatcher.Dispatch(ctx, effects)

	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, actor domain.Actor, id string, input domain.ServiceInput) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionEditService, svc); err != nil {
		return nil, err
	}

	if err = applyServiceInput(svc, input); err != nil {
		return nil, err
	}
	now := s.now()
	svc.UpdatedAt = now

	if err = s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityServiceUpdated, domain.EntityService, svc.ID,
		fmt.Sprintf("Service %q updated", svc.Title), now))
	s.dispatcher.Dispatch(ctx, effects)

	return svc, nil
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.repo.ListAvailable(ctx)
	if err != nil {
		s.logger.Error("failed to list services", logger.String("error", err.Error()))
		return []*domain.Service{}, nil
	}
	return services, nil
}

func (s *CatalogService) ListByProvider(ctx context.Context, actor domain.Actor) ([]*domain.Service, error) {
	if err := s.guard.CanPerform(actor, authz.ActionCreateService, nil); err != nil {
		return nil, err
	}
	services, err := s.repo.ListByProvider(ctx, actor.ID)
	if err != nil {
		s.logger.Error("failed to list provider services",
			logger.String("provider_id", actor.ID),
			logger.String("error", err.Error()),
		)
		return []*domain.Service{}, nil
	}
	return services, nil
}

func applyServiceInput(svc *domain.Service, input domain.ServiceInput) error {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
		}
		svc.Title = strings.TrimSpace(*input.Title)
	}
	if input.Type != nil {
		svc.Type = strings.TrimSpace(*input.Type)
	}
	if input.BasePrice != nil {
		p := *input.BasePrice
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: base_price must be a non-negative number", domain.ErrValidation)
		}
		svc.BasePrice = math.Round(p*100) / 100
	}
	if input.Available != nil {
		svc.Available = *input.Available
	}
	return nil
}
