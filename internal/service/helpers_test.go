package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/outbox"
	"github.com/stpnv0/EventMarket/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	l, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return l
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store *memory.Store
	clock *fakeClock

	users     *UserService
	events    *EventService
	proposals *ProposalService
	bookings  *BookingService
	catalog   *CatalogService
	feed      *FeedService

	admin    domain.Actor
	employee domain.Actor
	customer domain.Actor
	stranger domain.Actor
	provider domain.Actor
	rival    domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := newTestLogger(t)
	store := memory.NewStore()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	guard := authz.NewGuard()
	dispatcher := outbox.NewDispatcher(store.Notifications(), store.Activities(), store.Users(), nil, log)

	f := &fixture{
		store:     store,
		clock:     clock,
		users:     NewUserService(store.Users(), NewOwnerResolver(store.Users()), guard, dispatcher, log),
		events:    NewEventService(store.Events(), store.Proposals(), store.Bookings(), guard, dispatcher, log),
		proposals: NewProposalService(store.Proposals(), store.Events(), guard, dispatcher, log, DefaultProposalValidity),
		bookings:  NewBookingService(store.Bookings(), store.Events(), store.Services(), guard, dispatcher, log),
		catalog:   NewCatalogService(store.Services(), guard, dispatcher, log),
		feed:      NewFeedService(store.Notifications(), store.Activities(), guard, log),
	}
	f.users.now = clock.Now
	f.events.now = clock.Now
	f.proposals.now = clock.Now
	f.bookings.now = clock.Now
	f.catalog.now = clock.Now

	f.admin = f.seedUser(t, "admin-1", domain.RoleAdmin, domain.UserStatusActive)
	f.employee = f.seedUser(t, "employee-1", domain.RoleEmployee, domain.UserStatusActive)
	f.customer = f.seedUser(t, "customer-1", domain.RoleCustomer, domain.UserStatusActive)
	f.stranger = f.seedUser(t, "customer-2", domain.RoleCustomer, domain.UserStatusActive)
	f.provider = f.seedUser(t, "provider-1", domain.RoleProvider, domain.UserStatusActive)
	f.rival = f.seedUser(t, "provider-2", domain.RoleProvider, domain.UserStatusActive)
	return f
}

func (f *fixture) seedUser(t *testing.T, id string, role domain.Role, status domain.UserStatus) domain.Actor {
	t.Helper()
	u := &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      id,
		Role:      role,
		Status:    status,
		CreatedAt: f.clock.Now(),
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u.Actor()
}

func (f *fixture) createEvent(t *testing.T) *domain.Event {
	t.Helper()
	event, _, err := f.events.CreateEvent(context.Background(), f.customer, domain.CreateEventInput{
		Name:      "Wedding",
		EventDate: f.clock.Now().Add(60 * 24 * time.Hour),
	})
	require.NoError(t, err)
	return event
}

func (f *fixture) createService(t *testing.T, price float64) *domain.Service {
	t.Helper()
	title := "DJ set"
	svc, err := f.catalog.Create(context.Background(), f.provider, domain.ServiceInput{
		Title:     &title,
		BasePrice: &price,
	})
	require.NoError(t, err)
	return svc
}

func (f *fixture) createProposal(t *testing.T, eventID string) *domain.Proposal {
	t.Helper()
	p, _, err := f.proposals.CreateProposal(context.Background(), f.admin, eventID, domain.ProposalInput{
		Title: "Full package",
		Items: []domain.ProposalItem{
			{Name: "Catering", Price: 1200.50, Quantity: 1},
			{Name: "Chairs", Price: 2.25, Quantity: 100},
		},
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) notificationsOf(t *testing.T, userID string) []*domain.Notification {
	t.Helper()
	list, err := f.store.Notifications().ListByUser(context.Background(), userID)
	require.NoError(t, err)
	return list
}

func countType(list []*domain.Notification, typ domain.NotificationType) int {
	n := 0
	for _, it := range list {
		if it.Type == typ {
			n++
		}
	}
	return n
}
