package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

type mockActivityRepo struct{ mock.Mock }

func (m *mockActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockActivityRepo) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Activity)
	return list, args.Error(1)
}

type chanPusher struct{ pushed chan *domain.Notification }

func (p *chanPusher) Push(_ context.Context, _ *domain.User, n *domain.Notification) {
	p.pushed <- n
}

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return log
}

func TestDispatcher_FailuresDoNotStopDelivery(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &domain.User{
		ID: "u1", Email: "u1@example.com", Role: domain.RoleCustomer, Status: domain.UserStatusActive,
	}))

	activities := &mockActivityRepo{}
	activities.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Twice()
	pusher := &chanPusher{pushed: make(chan *domain.Notification, 2)}

	d := NewDispatcher(store.Notifications(), activities, store.Users(), pusher, newTestLogger(t))

	var effects domain.Effects
	effects.Record(domain.Activity{ID: "a1", EntityID: "e1"})
	effects.Record(domain.Activity{ID: "a2", EntityID: "e1"})
	effects.Notify(domain.Notification{ID: "n1", UserID: "u1", Type: domain.NotificationEventUpdated, CreatedAt: time.Now()})
	effects.Notify(domain.Notification{ID: "n2", UserID: "ghost", Type: domain.NotificationEventUpdated, CreatedAt: time.Now()})

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	d.Dispatch(cctx, effects)

	activities.AssertExpectations(t)

	stored, err := store.Notifications().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	select {
	case n := <-pusher.pushed:
		assert.Equal(t, "n1", n.ID)
	case <-time.After(time.Second):
		t.Fatal("notification was not pushed")
	}

	select {
	case n := <-pusher.pushed:
		t.Fatalf("unexpected push of %s for unknown user", n.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatcher_NilPusher(t *testing.T) {
	store := memory.NewStore()
	d := NewDispatcher(store.Notifications(), store.Activities(), store.Users(), nil, newTestLogger(t))

	var effects domain.Effects
	effects.Notify(domain.Notification{ID: "n1", UserID: "nobody"})
	effects.Record(domain.Activity{ID: "a1"})
	d.Dispatch(context.Background(), effects)

	list, err := store.Activities().List(context.Background(), domain.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := store.Notifications().GetByID(context.Background(), "n1")
	require.NoError(t, err)
	assert.False(t, n.IsRead)
}
