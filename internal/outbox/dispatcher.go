// Package outbox executes the side effects returned by workflow managers.
package outbox

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// Dispatcher persists activities and notifications and pushes each stored
// notification to its recipient out of band. Every failure is logged and
// swallowed: the transition that produced the effects has already happened.
type Dispatcher struct {
	notifications ports.NotificationRepo
	activities    ports.ActivityRepo
	users         ports.UserRepo
	pusher        ports.NotificationPusher
	logger        logger.Logger
}

func NewDispatcher(
	notifications ports.NotificationRepo,
	activities ports.ActivityRepo,
	users ports.UserRepo,
	pusher ports.NotificationPusher,
	logger logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		activities:    activities,
		users:         users,
		pusher:        pusher,
		logger:        logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, effects domain.Effects) {
	// Effects must land even if the request is cancelled mid-dispatch.
	ctx = context.WithoutCancel(ctx)

	for i := range effects.Activities {
		a := effects.Activities[i]
		if err := d.activities.Create(ctx, &a); err != nil {
			d.logger.Error("failed to record activity",
				logger.String("activity_type", string(a.ActivityType)),
				logger.String("entity_id", a.EntityID),
				logger.String("error", err.Error()),
			)
		}
	}

	for i := range effects.Notifications {
		n := effects.Notifications[i]
		if err := d.notifications.Create(ctx, &n); err != nil {
			d.logger.Error("failed to store notification",
				logger.String("type", string(n.Type)),
				logger.String("user_id", n.UserID),
				logger.String("error", err.Error()),
			)
			continue
		}
		d.push(ctx, &n)
	}
}

func (d *Dispatcher) push(ctx context.Context, n *domain.Notification) {
	if d.pusher == nil {
		return
	}
	user, err := d.users.GetByID(ctx, n.UserID)
	if err != nil {
		d.logger.Error("failed to get user for notification push",
			logger.String("user_id", n.UserID),
			logger.String("error", err.Error()),
		)
		return
	}
	go d.pusher.Push(ctx, user, n)
}
