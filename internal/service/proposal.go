package service

import (
	"context"
	"errors"
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

const DefaultProposalValidity = 30 * 24 * time.Hour

var validUntilLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type ProposalService struct {
	repo       ports.ProposalRepo
	eventRepo  ports.EventRepo
	guard      ports.Guard
	dispatcher ports.EffectDispatcher
	logger     logger.Logger
	validity   time.Duration
	now        func() time.Time
}

func NewProposalService(
	repo ports.ProposalRepo,
	eventRepo ports.EventRepo,
	guard ports.Guard,
	dispatcher ports.EffectDispatcher,
	logger logger.Logger,
	validity time.Duration,
) *ProposalService {
	if validity <= 0 {
		validity = DefaultProposalValidity
	}
	return &ProposalService{
		repo:       repo,
		eventRepo:  eventRepo,
		guard:      guard,
		dispatcher: dispatcher,
		logger:     logger,
		validity:   validity,
		now:        utcNow,
	}
}

func (s *ProposalService) CreateProposal(
	ctx context.Context,
	actor domain.Actor,
	eventID string,
	input domain.ProposalInput,
) (*domain.Proposal, domain.Effects, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, domain.Effects{}, fmt.Errorf("get event: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionCreateProposal, event); err != nil {
		return nil, domain.Effects{}, err
	}
	if event.Status.IsTerminal() {
		return nil, domain.Effects{}, fmt.Errorf("%w: event is %s", domain.ErrInvalidState, event.Status)
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.Effects{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	total, err := reconcileTotal(input.Items, input.TotalPrice)
	if err != nil {
		return nil, domain.Effects{}, err
	}

	now := s.now()
	items := input.Items
	if items == nil {
		items = []domain.ProposalItem{}
	}
	proposal := &domain.Proposal{
		ID:          uuid.New().String(),
		EventID:     eventID,
		AdminID:     actor.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Items:       items,
		TotalPrice:  total,
		ValidUntil:  s.parseValidUntil(input.ValidUntil, now),
		Status:      domain.ProposalStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = s.repo.Create(ctx, proposal); err != nil {
		return nil, domain.Effects{}, fmt.Errorf("create proposal: %w", err)
	}

	s.logger.Info("proposal created",
		logger.String("proposal_id", proposal.ID),
		logger.String("event_id", eventID),
		logger.String("admin_id", actor.ID),
	)

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityProposalCreated, domain.EntityProposal, proposal.ID,
		fmt.Sprintf("Proposal %q drafted for event %q", proposal.Title, event.Name), now))
	s.dispatcher.Dispatch(ctx, effects)

	return proposal, effects, nil
}

func (s *ProposalService) UpdateProposal(
	ctx context.Context,
	actor domain.Actor,
	id string,
	patch domain.ProposalPatch,
) (*domain.Proposal, domain.Effects, error) {
	proposal, event, err := s.load(ctx, id)
	if err != nil {
		return nil, domain.Effects{}, err
	}
	if err = s.guard.CanPerform(actor, authz.ActionEditProposal, authz.ProposalTarget{Proposal: proposal, Event: event}); err != nil {
		if !proposal.Status.IsEditable() && actor.Role.IsStaff() {
			return nil, domain.Effects{}, fmt.Errorf("%w: proposal is %s", domain.ErrInvalidState, proposal.Status)
		}
		return nil, domain.Effects{}, err
	}

	updated := *proposal
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, domain.Effects{}, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
		}
		updated.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Items != nil {
		updated.Items = *patch.Items
		if updated.Items == nil {
			updated.Items = []domain.ProposalItem{}
		}
	}
	if patch.Items != nil || patch.TotalPrice != nil {
		total, err := reconcileTotal(updated.Items, patch.TotalPrice)
		if err != nil {
			return nil, domain.Effects{}, err
		}
		updated.TotalPrice = total
	}
	now := s.now()
	if patch.ValidUntil != nil {
		updated.ValidUntil = s.parseValidUntil(*patch.ValidUntil, now)
	}
	updated.UpdatedAt = now

	if err = s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.Effects{}, fmt.Errorf("%w: proposal changed concurrently", domain.ErrInvalidState)
		}
		return nil, domain.Effects{}, fmt.Errorf("update proposal: %w", err)
	}

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityProposalUpdated, domain.EntityProposal, id,
		fmt.Sprintf("Proposal %q edited", updated.Title), now))
	s.dispatcher.Dispatch(ctx, effects)

	return &updated, effects, nil
}

// SendProposal publishes a draft to the event's customer.
func (s *ProposalService) SendProposal(
	ctx context.Context,
	actor domain.Actor,
	id string,
) (*domain.Proposal, domain.Effects, error) {
	proposal, event, err := s.load(ctx, id)
	if err != nil {
		return nil, domain.Effects{}, err
	}
	if err = s.guard.CanPerform(actor, authz.ActionSendProposal, authz.ProposalTarget{Proposal: proposal, Event: event}); err != nil {
		return nil, domain.Effects{}, err
	}
	if proposal.Status != domain.ProposalStatusDraft {
		return nil, domain.Effects{}, fmt.Errorf("%w: proposal is %s, expected draft", domain.ErrInvalidState, proposal.Status)
	}
	now := s.now()
	if !proposal.ValidUntil.After(now) {
		return nil, domain.Effects{}, fmt.Errorf("%w: valid_until is in the past", domain.ErrValidation)
	}

	err = s.repo.UpdateStatus(ctx, id, domain.ProposalStatusDraft, domain.ProposalStatusPending, nil)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.Effects{}, fmt.Errorf("%w: proposal is no longer draft", domain.ErrInvalidState)
		}
		return nil, domain.Effects{}, fmt.Errorf("send proposal: %w", err)
	}
	proposal.Status = domain.ProposalStatusPending
	proposal.UpdatedAt = now

	s.logger.Info("proposal sent",
		logger.String("proposal_id", id),
		logger.String("customer_id", event.CustomerID),
	)

	var effects domain.Effects
	effects.Notify(newNotification(event.CustomerID, domain.NotificationProposalReceived,
		"New proposal",
		fmt.Sprintf("You received proposal %q for %q (total %.2f)", proposal.Title, event.Name, proposal.TotalPrice),
		"/customer/proposals/"+id, now))
	effects.Record(newActivity(actor.ID, domain.ActivityProposalSent, domain.EntityProposal, id,
		fmt.Sprintf("Proposal %q sent to customer", proposal.Title), now))
	s.dispatcher.Dispatch(ctx, effects)

	return proposal, effects, nil
}

// ResolveProposal records the customer's decision on a pending proposal.
// Feedback is mandatory for rejections.
func (s *ProposalService) ResolveProposal(
	ctx context.Context,
	actor domain.Actor,
	id string,
	decision domain.ProposalDecision,
	feedback *string,
) (*domain.Proposal, domain.Effects, error) {
	next, ok := decision.Status()
	if !ok {
		return nil, domain.Effects{}, fmt.Errorf("%w: status must be accepted or rejected", domain.ErrValidation)
	}
	if feedback != nil {
		trimmed := strings.TrimSpace(*feedback)
		feedback = &trimmed
		if trimmed == "" {
			feedback = nil
		}
	}
	if next == domain.ProposalStatusRejected && feedback == nil {
		return nil, domain.Effects{}, fmt.Errorf("%w: feedback is required when rejecting", domain.ErrValidation)
	}

	proposal, event, err := s.load(ctx, id)
	if err != nil {
		return nil, domain.Effects{}, err
	}
	if err = s.guard.CanPerform(actor, authz.ActionResolveProposal, authz.ProposalTarget{Proposal: proposal, Event: event}); err != nil {
		return nil, domain.Effects{}, err
	}
	if proposal.Status != domain.ProposalStatusPending {
		return nil, domain.Effects{}, fmt.Errorf("%w: proposal is %s, expected pending", domain.ErrInvalidState, proposal.Status)
	}

	if err = s.repo.UpdateStatus(ctx, id, domain.ProposalStatusPending, next, feedback); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, domain.Effects{}, fmt.Errorf("%w: proposal is no longer pending", domain.ErrInvalidState)
		}
		return nil, domain.Effects{}, fmt.Errorf("resolve proposal: %w", err)
	}

	now := s.now()
	proposal.Status = next
	proposal.Feedback = feedback
	proposal.UpdatedAt = now

	s.logger.Info("proposal resolved",
		logger.String("proposal_id", id),
		logger.String("status", string(next)),
		logger.String("customer_id", actor.ID),
	)

	notifType, activityType, verb := domain.NotificationProposalAccepted, domain.ActivityProposalAccepted, "accepted"
	if next == domain.ProposalStatusRejected {
		notifType, activityType, verb = domain.NotificationProposalRejected, domain.ActivityProposalRejected, "rejected"
	}
	message := fmt.Sprintf("Proposal %q for %q was %s", proposal.Title, event.Name, verb)
	if feedback != nil {
		message += ": " + *feedback
	}

	var effects domain.Effects
	effects.Notify(newNotification(proposal.AdminID, notifType, "Proposal "+verb, message,
		"/admin/proposals/"+id, now))
	effects.Record(newActivity(actor.ID, activityType, domain.EntityProposal, id,
		fmt.Sprintf("Customer %s proposal %q", verb, proposal.Title), now))
	s.dispatcher.Dispatch(ctx, effects)

	return proposal, effects, nil
}

func (s *ProposalService) GetProposal(ctx context.Context, actor domain.Actor, id string) (*domain.Proposal, error) {
	proposal, event, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.guard.CanPerform(actor, authz.ActionViewProposal, authz.ProposalTarget{Proposal: proposal, Event: event}); err != nil {
		return nil, err
	}
	return proposal, nil
}

// ListProposals returns the proposals of an event visible to the actor;
// customers never see drafts.
func (s *ProposalService) ListProposals(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Proposal, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionViewEvent, event); err != nil {
		return nil, err
	}

	proposals, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("failed to list proposals",
			logger.String("event_id", eventID),
			logger.String("error", err.Error()),
		)
		return []*domain.Proposal{}, nil
	}

	res := make([]*domain.Proposal, 0, len(proposals))
	for _, p := range proposals {
		if err = s.expireIfOverdue(ctx, p); err != nil {
			s.logger.Error("failed to expire proposal",
				logger.String("proposal_id", p.ID),
				logger.String("error", err.Error()),
			)
		}
		if s.guard.CanPerform(actor, authz.ActionViewProposal, authz.ProposalTarget{Proposal: p, Event: event}) == nil {
			res = append(res, p)
		}
	}
	return res, nil
}

// load fetches a proposal with its event and settles lazy expiry first.
func (s *ProposalService) load(ctx context.Context, id string) (*domain.Proposal, *domain.Event, error) {
	proposal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get proposal: %w", err)
	}
	if err = s.expireIfOverdue(ctx, proposal); err != nil {
		return nil, nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, proposal.EventID)
	if err != nil {
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	return proposal, event, nil
}

// expireIfOverdue moves a pending proposal past its valid_until to expired.
// There is no background job; expiry is settled whenever a proposal is read.
func (s *ProposalService) expireIfOverdue(ctx context.Context, p *domain.Proposal) error {
	now := s.now()
	if !p.IsOverdue(now) {
		return nil
	}

	err := s.repo.UpdateStatus(ctx, p.ID, domain.ProposalStatusPending, domain.ProposalStatusExpired, nil)
	if errors.Is(err, domain.ErrInvalidTransition) {
		// Resolved by someone else in the meantime; report what is stored.
		fresh, getErr := s.repo.GetByID(ctx, p.ID)
		if getErr != nil {
			return fmt.Errorf("reload proposal: %w", getErr)
		}
		*p = *fresh
		return nil
	}
	if err != nil {
		return fmt.Errorf("expire proposal: %w", err)
	}

	p.Status = domain.ProposalStatusExpired
	p.UpdatedAt = now

	s.logger.Info("proposal expired",
		logger.String("proposal_id", p.ID),
		logger.String("valid_until", p.ValidUntil.Format(time.RFC3339)),
	)

	var effects domain.Effects
	effects.Record(newActivity(SystemActorID, domain.ActivityProposalExpired, domain.EntityProposal, p.ID,
		fmt.Sprintf("Proposal %q expired", p.Title), now))
	s.dispatcher.Dispatch(ctx, effects)
	return nil
}

func (s *ProposalService) parseValidUntil(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range validUntilLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
		s.logger.Debug("unparsable valid_until, using default", logger.String("value", raw))
	}
	return now.Add(s.validity)
}

// reconcileTotal validates items and returns the derived total. A total
// sent by the client must match the item sum to the cent.
func reconcileTotal(items []domain.ProposalItem, claimed *float64) (float64, error) {
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return 0, fmt.Errorf("%w: items[%d].name is required", domain.ErrValidation, i)
		}
		if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
			return 0, fmt.Errorf("%w: items[%d].price must be a non-negative number", domain.ErrValidation, i)
		}
		if it.Quantity < 1 {
			return 0, fmt.Errorf("%w: items[%d].quantity must be at least 1", domain.ErrValidation, i)
		}
	}

	total, err := domain.ItemsTotal(items)
	if err != nil {
		return 0, err
	}
	if claimed != nil && math.Round(*claimed*100) != math.Round(total*100) {
		return 0, fmt.Errorf("%w: total_price %.2f does not match items total %.2f", domain.ErrValidation, *claimed, total)
	}
	return total, nil
}
