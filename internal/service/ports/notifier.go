package ports

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/domain"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.Activity, error)
}

// NotificationPusher delivers a stored notification out of band.
type NotificationPusher interface {
	Push(ctx context.Context, user *domain.User, n *domain.Notification)
}

// EffectDispatcher executes the outbox of a workflow transition.
type EffectDispatcher interface {
	Dispatch(ctx context.Context, effects domain.Effects)
}

type Guard interface {
	CanPerform(actor domain.Actor, action authz.Action, resource any) error
}
