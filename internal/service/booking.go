package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type BookingService struct {
	bookingRepo ports.BookingRepo
	eventRepo   ports.EventRepo
	serviceRepo ports.ServiceRepo
	guard       ports.Guard
	dispatcher  ports.EffectDispatcher
	logger      logger.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo ports.BookingRepo,
	eventRepo ports.EventRepo,
	serviceRepo ports.ServiceRepo,
	guard ports.Guard,
	dispatcher ports.EffectDispatcher,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		serviceRepo: serviceRepo,
		guard:       guard,
		dispatcher:  dispatcher,
		logger:      logger,
		now:         utcNow,
	}
}

// Book creates a pending booking of a service for one of the customer's
// events. The service base price is frozen into AgreePrice.
func (s *BookingService) Book(
	ctx context.Context,
	actor domain.Actor,
	input domain.CreateBookingInput,
) (*domain.Booking, domain.Effects, error) {
	if input.EventID == "" || input.ServiceID == "" {
		return nil, domain.Effects{}, fmt.Errorf("%w: event_id and service_id are required", domain.ErrValidation)
	}
	if input.StartTime.IsZero() {
		return nil, domain.Effects{}, fmt.Errorf("%w: start_time is required", domain.ErrValidation)
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, domain.Effects{}, fmt.Errorf("check event: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionCreateBooking, event); err != nil {
		return nil, domain.Effects{}, err
	}
	if event.Status.IsTerminal() {
		return nil, domain.Effects{}, fmt.Errorf("%w: event is %s", domain.ErrInvalidState, event.Status)
	}

	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, domain.Effects{}, fmt.Errorf("check service: %w", err)
	}
	if !svc.Available {
		return nil, domain.Effects{}, fmt.Errorf("%w: service is not available", domain.ErrInvalidState)
	}

	now := s.now()
	booking := &domain.Booking{
		ID:                  uuid.New().String(),
		EventID:             event.ID,
		ServiceID:           svc.ID,
		ProviderID:          svc.ProviderID,
		CustomerID:          event.CustomerID,
		StartTime:           input.StartTime.UTC(),
		Status:              domain.BookingStatusPending,
		AgreePrice:          svc.BasePrice,
		SpecialInstructions: strings.TrimSpace(input.Notes),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err = s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, domain.Effects{}, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.String("event_id", event.ID),
		logger.String("service_id", svc.ID),
		logger.String("provider_id", svc.ProviderID),
	)

	var effects domain.Effects
	effects.Notify(newNotification(svc.ProviderID, domain.NotificationBookingReceived,
		"New booking request",
		fmt.Sprintf("%q was requested for event %q on %s", svc.Title, event.Name, booking.StartTime.Format("02.01.2006 15:04")),
		"/provider/bookings/"+booking.ID, now))
	effects.Record(newActivity(actor.ID, domain.ActivityBookingCreated, domain.EntityBooking, booking.ID,
		fmt.Sprintf("Booked %q for event %q at %.2f", svc.Title, event.Name, booking.AgreePrice), now))
	s.dispatcher.Dispatch(ctx, effects)

	return booking, effects, nil
}

// Resolve lets the booked provider confirm or decline a pending booking.
func (s *BookingService) Resolve(
	ctx context.Context,
	actor domain.Actor,
	bookingID string,
	decision domain.BookingStatus,
) (*domain.Booking, domain.Effects, error) {
	if decision != domain.BookingStatusConfirmed && decision != domain.BookingStatusDeclined {
		return nil, domain.Effects{}, fmt.Errorf("%w: status must be confirmed or declined", domain.ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, domain.Effects{}, fmt.Errorf("get booking: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionResolveBooking, booking); err != nil {
		return nil, domain.Effects{}, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, domain.Effects{}, domain.ErrInvalidState
	}

	if err = s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, decision); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.Effects{}, fmt.Errorf("%w: booking is no longer pending", domain.ErrInvalidState)
		}
		return nil, domain.Effects{}, fmt.Errorf("resolve booking: %w", err)
	}

	now := s.now()
	booking.Status = decision
	booking.UpdatedAt = now

	s.logger.Info("booking resolved",
		logger.String("booking_id", bookingID),
		logger.String("status", string(decision)),
		logger.String("provider_id", actor.ID),
	)

	notifType, verb := domain.NotificationBookingConfirmed, "confirmed"
	if decision == domain.BookingStatusDeclined {
		notifType, verb = domain.NotificationBookingDeclined, "declined"
	}

	var effects domain.Effects
	effects.Notify(newNotification(booking.CustomerID, notifType,
		"Booking "+verb,
		fmt.Sprintf("Your booking for %s was %s by the provider", booking.StartTime.Format("02.01.2006 15:04"), verb),
		"/customer/bookings/"+bookingID, now))
	effects.Record(newActivity(actor.ID, domain.ActivityBookingUpdate, domain.EntityBooking, bookingID,
		fmt.Sprintf("Booking status changed from %s to %s", domain.BookingStatusPending, decision), now))
	s.dispatcher.Dispatch(ctx, effects)

	return booking, effects, nil
}

// Administer applies the operator-only transitions: cancel an active
// booking or complete a confirmed one.
func (s *BookingService) Administer(
	ctx context.Context,
	actor domain.Actor,
	bookingID string,
	next domain.BookingStatus,
) (*domain.Booking, domain.Effects, error) {
	if next != domain.BookingStatusCancelled && next != domain.BookingStatusCompleted {
		return nil, domain.Effects{}, fmt.Errorf("%w: status must be cancelled or completed", domain.ErrValidation)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, domain.Effects{}, fmt.Errorf("get booking: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionAdministerBooking, booking); err != nil {
		return nil, domain.Effects{}, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, domain.Effects{}, fmt.Errorf("%w: booking %s -> %s", domain.ErrInvalidTransition, booking.Status, next)
	}

	prev := booking.Status
	if err = s.bookingRepo.UpdateStatus(ctx, bookingID, prev, next); err != nil {
		return nil, domain.Effects{}, fmt.Errorf("update booking status: %w", err)
	}

	now := s.now()
	booking.Status = next
	booking.UpdatedAt = now

	s.logger.Info("booking status changed",
		logger.String("booking_id", bookingID),
		logger.String("from", string(prev)),
		logger.String("to", string(next)),
		logger.String("actor_id", actor.ID),
	)

	var effects domain.Effects
	if next == domain.BookingStatusCancelled {
		for _, userID := range []string{booking.CustomerID, booking.ProviderID} {
			effects.Notify(newNotification(userID, domain.NotificationBookingCancelled,
				"Booking cancelled", "A booking was cancelled by the marketplace operator",
				"/bookings/"+bookingID, now))
		}
	}
	effects.Record(newActivity(actor.ID, domain.ActivityBookingUpdate, domain.EntityBooking, bookingID,
		fmt.Sprintf("Booking status changed from %s to %s", prev, next), now))
	s.dispatcher.Dispatch(ctx, effects)

	return booking, effects, nil
}

func (s *BookingService) ListByCustomer(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrForbidden
	}
	bookings, err := s.bookingRepo.ListByCustomer(ctx, actor.ID)
	if err != nil {
		s.logger.Error("failed to list customer bookings",
			logger.String("customer_id", actor.ID),
			logger.String("error", err.Error()),
		)
		return []*domain.Booking{}, nil
	}
	return bookings, nil
}

func (s *BookingService) ListByProvider(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	if actor.Role != domain.RoleProvider {
		return nil, domain.ErrForbidden
	}
	bookings, err := s.bookingRepo.ListByProvider(ctx, actor.ID)
	if err != nil {
		s.logger.Error("failed to list provider bookings",
			logger.String("provider_id", actor.ID),
			logger.String("error", err.Error()),
		)
		return []*domain.Booking{}, nil
	}
	return bookings, nil
}
