// Package authz holds the authorization guard for the event workflow.
// The guard is pure: it sees the actor and the already-loaded resource and
// answers allow or deny, without I/O.
package authz

import (
	"github.com/stpnv0/EventMarket/internal/domain"
)

// ProposalTarget bundles a proposal with its parent event, which carries
// the owning customer.
type ProposalTarget struct {
	Proposal *domain.Proposal
	Event    *domain.Event
}

type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// CanPerform returns nil when the action is allowed and domain.ErrForbidden
// otherwise. The error never says which rule failed.
func (g *Guard) CanPerform(actor domain.Actor, action Action, resource any) error {
	if g.allowed(actor, action, resource) {
		return nil
	}
	return domain.ErrForbidden
}

func (g *Guard) allowed(actor domain.Actor, action Action, resource any) bool {
	if actor.ID == "" {
		return false
	}
	if actor.Role != domain.RoleAdmin && actor.Status != domain.UserStatusActive {
		return false
	}

	switch action {
	case ActionCreateEvent:
		return actor.Role == domain.RoleCustomer

	case ActionListAllEvents, ActionViewActivity:
		return actor.Role.IsStaff()

	case ActionManageUsers:
		return actor.Role == domain.RoleAdmin

	case ActionViewEvent:
		e, ok := resource.(*domain.Event)
		return ok && e != nil && (actor.Role.IsStaff() || owns(actor, e))

	case ActionAdvanceEvent:
		e, ok := resource.(*domain.Event)
		return ok && e != nil && actor.Role.IsStaff()

	case ActionDeleteEvent:
		e, ok := resource.(*domain.Event)
		return ok && e != nil && actor.Role == domain.RoleAdmin

	case ActionCancelEvent:
		e, ok := resource.(*domain.Event)
		if !ok || e == nil {
			return false
		}
		if actor.Role.IsStaff() {
			return true
		}
		return owns(actor, e) &&
			(e.Status == domain.EventStatusPending || e.Status == domain.EventStatusConfirmed)

	case ActionCreateProposal:
		e, ok := resource.(*domain.Event)
		return ok && e != nil && actor.Role.IsStaff()

	case ActionEditProposal:
		t, ok := resource.(ProposalTarget)
		if !ok || t.Proposal == nil || !t.Proposal.Status.IsEditable() {
			return false
		}
		return actor.Role == domain.RoleAdmin ||
			(actor.Role == domain.RoleEmployee && t.Proposal.AdminID == actor.ID)

	case ActionSendProposal:
		t, ok := resource.(ProposalTarget)
		return ok && t.Proposal != nil && actor.Role.IsStaff()

	case ActionResolveProposal:
		t, ok := resource.(ProposalTarget)
		return ok && t.Event != nil && owns(actor, t.Event)

	case ActionViewProposal:
		t, ok := resource.(ProposalTarget)
		if !ok || t.Proposal == nil || t.Event == nil {
			return false
		}
		if actor.Role.IsStaff() {
			return true
		}
		return owns(actor, t.Event) && t.Proposal.Status != domain.ProposalStatusDraft

	case ActionCreateBooking:
		e, ok := resource.(*domain.Event)
		return ok && owns(actor, e)

	case ActionResolveBooking:
		b, ok := resource.(*domain.Booking)
		return ok && b != nil && actor.Role == domain.RoleProvider && b.ProviderID == actor.ID

	case ActionAdministerBooking:
		b, ok := resource.(*domain.Booking)
		return ok && b != nil && actor.Role.IsStaff()

	case ActionCreateService:
		return actor.Role == domain.RoleProvider

	case ActionEditService:
		s, ok := resource.(*domain.Service)
		return ok && s != nil && actor.Role == domain.RoleProvider && s.OwnerID() == actor.ID

	case ActionReadNotification:
		n, ok := resource.(*domain.Notification)
		return ok && n != nil && n.OwnerID() == actor.ID
	}

	return false
}

// owns checks customer ownership of an event.
func owns(actor domain.Actor, e *domain.Event) bool {
	return e != nil && actor.Role == domain.RoleCustomer && e.OwnerID() == actor.ID
}
