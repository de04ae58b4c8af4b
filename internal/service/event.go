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

// EventService owns event status transitions. Cancelling an event
// cascades to its open proposals (expired) and active bookings (cancelled).
type EventService struct {
	repo         ports.EventRepo
	proposalRepo ports.ProposalRepo
	bookingRepo  ports.BookingRepo
	guard        ports.Guard
	dispatcher   ports.EffectDispatcher
	logger       logger.Logger
	now          func() time.Time
}

func NewEventService(
	repo ports.EventRepo,
	proposalRepo ports.ProposalRepo,
	bookingRepo ports.BookingRepo,
	guard ports.Guard,
	dispatcher ports.EffectDispatcher,
	logger logger.Logger,
) *EventService {
	return &EventService{
		repo:         repo,
		proposalRepo: proposalRepo,
		bookingRepo:  bookingRepo,
		guard:        guard,
		dispatcher:   dispatcher,
		logger:       logger,
		now:          utcNow,
	}
}

func (s *EventService) CreateEvent(
	ctx context.Context,
	actor domain.Actor,
	input domain.CreateEventInput,
) (*domain.Event, domain.Effects, error) {
	if err := s.guard.CanPerform(actor, authz.ActionCreateEvent, nil); err != nil {
		return nil, domain.Effects{}, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Effects{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.EventDate.IsZero() {
		return nil, domain.Effects{}, fmt.Errorf("%w: event_date is required", domain.ErrValidation)
	}
	endDate := input.EventDate
	if input.EndDate != nil && !input.EndDate.IsZero() {
		endDate = *input.EndDate
	}
	if endDate.Before(input.EventDate) {
		return nil, domain.Effects{}, fmt.Errorf("%w: end_date must not precede event_date", domain.ErrValidation)
	}
	if input.AudienceSize < 0 {
		return nil, domain.Effects{}, fmt.Errorf("%w: audience_size must not be negative", domain.ErrValidation)
	}
	if input.Budget < 0 {
		return nil, domain.Effects{}, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}

	now := s.now()
	event := &domain.Event{
		ID:           uuid.New().String(),
		CustomerID:   actor.ID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		EventDate:    input.EventDate,
		EndDate:      endDate,
		Location:     input.Location,
		LocationType: input.LocationType,
		AudienceSize: input.AudienceSize,
		Budget:       input.Budget,
		Status:       domain.EventStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, domain.Effects{}, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		logger.String("event_id", event.ID),
		logger.String("customer_id", actor.ID),
	)

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityEventCreated, domain.EntityEvent, event.ID,
		fmt.Sprintf("Event %q created", event.Name), now))
	s.dispatcher.Dispatch(ctx, effects)

	return event, effects, nil
}

func (s *EventService) TransitionEvent(
	ctx context.Context,
	actor domain.Actor,
	eventID string,
	next domain.EventStatus,
) (*domain.Event, domain.Effects, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, domain.Effects{}, fmt.Errorf("get event: %w", err)
	}

	action := authz.ActionAdvanceEvent
	if next == domain.EventStatusCancelled {
		action = authz.ActionCancelEvent
	}
	if err = s.guard.CanPerform(actor, action, event); err != nil {
		return nil, domain.Effects{}, err
	}

	if !event.Status.CanTransitionTo(next) {
		return nil, domain.Effects{}, fmt.Errorf("%w: event %s -> %s", domain.ErrInvalidTransition, event.Status, next)
	}

	if err = s.repo.UpdateStatus(ctx, eventID, event.Status, next); err != nil {
		return nil, domain.Effects{}, fmt.Errorf("update event status: %w", err)
	}

	prev := event.Status
	now := s.now()
	event.Status = next
	event.UpdatedAt = now

	s.logger.Info("event status changed",
		logger.String("event_id", eventID),
		logger.String("from", string(prev)),
		logger.String("to", string(next)),
		logger.String("actor_id", actor.ID),
	)

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityEventUpdate, domain.EntityEvent, eventID,
		fmt.Sprintf("Event status changed from %s to %s", prev, next), now))
	if actor.ID != event.CustomerID {
		effects.Notify(newNotification(event.CustomerID, domain.NotificationEventUpdated,
			"Event updated",
			fmt.Sprintf("Your event %q is now %s", event.Name, next),
			"/events/"+eventID, now))
	}

	if next == domain.EventStatusCancelled {
		effects.Merge(s.cascadeCancel(ctx, actor, event))
	}

	s.dispatcher.Dispatch(ctx, effects)

	return event, effects, nil
}

// cascadeCancel closes the children of a cancelled event. Each child write
// is its own compare-and-set; a child that moved concurrently is skipped.
func (s *EventService) cascadeCancel(ctx context.Context, actor domain.Actor, event *domain.Event) domain.Effects {
	var effects domain.Effects
	now := s.now()

	proposals, err := s.proposalRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("failed to list proposals for cancelled event",
			logger.String("event_id", event.ID),
			logger.String("error", err.Error()),
		)
	}
	for _, p := range proposals {
		if !p.Status.IsEditable() {
			continue
		}
		if err = s.proposalRepo.UpdateStatus(ctx, p.ID, p.Status, domain.ProposalStatusExpired, nil); err != nil {
			s.logCascadeFailure("proposal", p.ID, event.ID, err)
			continue
		}
		effects.Record(newActivity(actor.ID, domain.ActivityProposalExpired, domain.EntityProposal, p.ID,
			"Proposal closed because its event was cancelled", now))
	}

	bookings, err := s.bookingRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("failed to list bookings for cancelled event",
			logger.String("event_id", event.ID),
			logger.String("error", err.Error()),
		)
	}
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		if err = s.bookingRepo.UpdateStatus(ctx, b.ID, b.Status, domain.BookingStatusCancelled); err != nil {
			s.logCascadeFailure("booking", b.ID, event.ID, err)
			continue
		}
		effects.Record(newActivity(actor.ID, domain.ActivityBookingUpdate, domain.EntityBooking, b.ID,
			fmt.Sprintf("Booking status changed from %s to %s", b.Status, domain.BookingStatusCancelled), now))
		effects.Notify(newNotification(b.ProviderID, domain.NotificationBookingCancelled,
			"Booking cancelled",
			fmt.Sprintf("The booking for event %q was cancelled together with the event", event.Name),
			"/provider/bookings/"+b.ID, now))
	}

	return effects
}

func (s *EventService) logCascadeFailure(kind, id, eventID string, err error) {
	if errors.Is(err, domain.ErrInvalidTransition) {
		s.logger.Warn("cascade skipped, status moved concurrently",
			logger.String("kind", kind),
			logger.String("id", id),
			logger.String("event_id", eventID),
		)
		return
	}
	s.logger.Error("cascade cancel failed",
		logger.String("kind", kind),
		logger.String("id", id),
		logger.String("event_id", eventID),
		logger.String("error", err.Error()),
	)
}

func (s *EventService) GetEvent(ctx context.Context, actor domain.Actor, id string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionViewEvent, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns every event for staff and the caller's own events
// for customers. Storage failures degrade to an empty list.
func (s *EventService) ListEvents(ctx context.Context, actor domain.Actor) ([]*domain.Event, error) {
	var (
		events []*domain.Event
		err    error
	)
	switch {
	case s.guard.CanPerform(actor, authz.ActionListAllEvents, nil) == nil:
		events, err = s.repo.List(ctx)
	case s.guard.CanPerform(actor, authz.ActionCreateEvent, nil) == nil:
		events, err = s.repo.ListByCustomer(ctx, actor.ID)
	default:
		return nil, domain.ErrForbidden
	}
	if err != nil {
		s.logger.Error("failed to list events",
			logger.String("actor_id", actor.ID),
			logger.String("error", err.Error()),
		)
		return []*domain.Event{}, nil
	}
	return events, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actor domain.Actor, id string) (domain.Effects, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Effects{}, fmt.Errorf("get event: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionDeleteEvent, event); err != nil {
		return domain.Effects{}, err
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return domain.Effects{}, fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted",
		logger.String("event_id", id),
		logger.String("actor_id", actor.ID),
	)

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityEventDeleted, domain.EntityEvent, id,
		fmt.Sprintf("Event %q deleted with its proposals and bookings", event.Name), s.now()))
	s.dispatcher.Dispatch(ctx, effects)

	return effects, nil
}
