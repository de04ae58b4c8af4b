package authz

import (
	"testing"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stretchr/testify/assert"
)

var (
	admin    = domain.Actor{ID: "a1", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
	employee = domain.Actor{ID: "emp1", Role: domain.RoleEmployee, Status: domain.UserStatusActive}
	customer = domain.Actor{ID: "c1", Role: domain.RoleCustomer, Status: domain.UserStatusActive}
	stranger = domain.Actor{ID: "c2", Role: domain.RoleCustomer, Status: domain.UserStatusActive}
	provider = domain.Actor{ID: "p1", Role: domain.RoleProvider, Status: domain.UserStatusActive}
)

func TestGuard_CapabilityMatrix(t *testing.T) {
	g := NewGuard()

	event := &domain.Event{ID: "e1", CustomerID: "c1", Status: domain.EventStatusPending}
	inProgress := &domain.Event{ID: "e2", CustomerID: "c1", Status: domain.EventStatusInProgress}
	draft := ProposalTarget{
		Proposal: &domain.Proposal{ID: "p", AdminID: "a1", Status: domain.ProposalStatusDraft},
		Event:    event,
	}
	pending := ProposalTarget{
		Proposal: &domain.Proposal{ID: "p", AdminID: "emp1", Status: domain.ProposalStatusPending},
		Event:    event,
	}
	accepted := ProposalTarget{
		Proposal: &domain.Proposal{ID: "p", AdminID: "a1", Status: domain.ProposalStatusAccepted},
		Event:    event,
	}
	booking := &domain.Booking{ID: "b1", CustomerID: "c1", ProviderID: "p1"}
	svc := &domain.Service{ID: "s1", ProviderID: "p1"}
	notif := &domain.Notification{ID: "n1", UserID: "c1"}

	tests := []struct {
		name     string
		actor    domain.Actor
		action   Action
		resource any
		allowed  bool
	}{
		{"customer creates event", customer, ActionCreateEvent, nil, true},
		{"admin cannot create event", admin, ActionCreateEvent, nil, false},
		{"provider cannot create event", provider, ActionCreateEvent, nil, false},

		{"admin advances event", admin, ActionAdvanceEvent, event, true},
		{"employee advances event", employee, ActionAdvanceEvent, event, true},
		{"customer cannot advance event", customer, ActionAdvanceEvent, event, false},
		{"owner cancels pending event", customer, ActionCancelEvent, event, true},
		{"owner cannot cancel in-progress event", customer, ActionCancelEvent, inProgress, false},
		{"stranger cannot cancel event", stranger, ActionCancelEvent, event, false},
		{"admin cancels in-progress event", admin, ActionCancelEvent, inProgress, true},
		{"provider cannot cancel event", provider, ActionCancelEvent, event, false},
		{"admin deletes event", admin, ActionDeleteEvent, event, true},
		{"employee cannot delete event", employee, ActionDeleteEvent, event, false},

		{"employee creates proposal", employee, ActionCreateProposal, event, true},
		{"customer cannot create proposal", customer, ActionCreateProposal, event, false},
		{"admin edits any draft", admin, ActionEditProposal, pending, true},
		{"employee edits own pending", employee, ActionEditProposal, pending, true},
		{"employee cannot edit foreign draft", employee, ActionEditProposal, draft, false},
		{"nobody edits accepted", admin, ActionEditProposal, accepted, false},
		{"admin sends proposal", admin, ActionSendProposal, draft, true},
		{"customer cannot send proposal", customer, ActionSendProposal, draft, false},
		{"owner resolves proposal", customer, ActionResolveProposal, pending, true},
		{"stranger cannot resolve proposal", stranger, ActionResolveProposal, pending, false},
		{"admin cannot resolve proposal", admin, ActionResolveProposal, pending, false},
		{"customer cannot view draft", customer, ActionViewProposal, draft, false},
		{"customer views pending", customer, ActionViewProposal, pending, true},

		{"owner books on own event", customer, ActionCreateBooking, event, true},
		{"stranger cannot book on event", stranger, ActionCreateBooking, event, false},
		{"provider resolves own booking", provider, ActionResolveBooking, booking, true},
		{"other provider cannot resolve", domain.Actor{ID: "p2", Role: domain.RoleProvider, Status: domain.UserStatusActive}, ActionResolveBooking, booking, false},
		{"customer cannot resolve booking", customer, ActionResolveBooking, booking, false},
		{"admin administers booking", admin, ActionAdministerBooking, booking, true},

		{"provider creates service", provider, ActionCreateService, nil, true},
		{"provider edits own service", provider, ActionEditService, svc, true},
		{"customer cannot edit service", customer, ActionEditService, svc, false},

		{"owner reads notification", customer, ActionReadNotification, notif, true},
		{"stranger cannot read notification", stranger, ActionReadNotification, notif, false},

		{"wrong resource type denied", admin, ActionAdvanceEvent, booking, false},
		{"unknown action denied", admin, Action("event:teleport"), event, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.CanPerform(tt.actor, tt.action, tt.resource)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

func TestGuard_InactiveActorDenied(t *testing.T) {
	g := NewGuard()

	pendingProvider := domain.Actor{ID: "p1", Role: domain.RoleProvider, Status: domain.UserStatusPending}
	err := g.CanPerform(pendingProvider, ActionCreateService, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	inactiveAdmin := domain.Actor{ID: "a1", Role: domain.RoleAdmin, Status: domain.UserStatusInactive}
	assert.NoError(t, g.CanPerform(inactiveAdmin, ActionListAllEvents, nil))
}

func TestGuard_DenialIsGeneric(t *testing.T) {
	g := NewGuard()

	err := g.CanPerform(domain.Actor{}, ActionCreateEvent, nil)
	assert.EqualError(t, err, "unauthorized")
}

func TestGuard_TypedNilResourceDenied(t *testing.T) {
	g := NewGuard()

	tests := []struct {
		name     string
		actor    domain.Actor
		action   Action
		resource any
	}{
		{"view nil event", admin, ActionViewEvent, (*domain.Event)(nil)},
		{"advance nil event", admin, ActionAdvanceEvent, (*domain.Event)(nil)},
		{"delete nil event", admin, ActionDeleteEvent, (*domain.Event)(nil)},
		{"cancel nil event", admin, ActionCancelEvent, (*domain.Event)(nil)},
		{"propose on nil event", admin, ActionCreateProposal, (*domain.Event)(nil)},
		{"book nil event", customer, ActionCreateBooking, (*domain.Event)(nil)},
		{"resolve nil booking", provider, ActionResolveBooking, (*domain.Booking)(nil)},
		{"administer nil booking", admin, ActionAdministerBooking, (*domain.Booking)(nil)},
		{"edit nil service", provider, ActionEditService, (*domain.Service)(nil)},
		{"read nil notification", customer, ActionReadNotification, (*domain.Notification)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.ErrorIs(t, g.CanPerform(tt.actor, tt.action, tt.resource), domain.ErrForbidden)
			})
		})
	}
}
