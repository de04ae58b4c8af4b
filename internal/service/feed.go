package service

import (
	"context"
	"fmt"

	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// FeedService exposes the read side of the side-effect stores:
// a user's notifications and, for staff, the activity log.
type FeedService struct {
	notifications ports.NotificationRepo
	activities    ports.ActivityRepo
	guard         ports.Guard
	logger        logger.Logger
}

func NewFeedService(
	notifications ports.NotificationRepo,
	activities ports.ActivityRepo,
	guard ports.Guard,
	logger logger.Logger,
) *FeedService {
	return &FeedService{
		notifications: notifications,
		activities:    activities,
		guard:         guard,
		logger:        logger,
	}
}

func (s *FeedService) ListNotifications(ctx context.Context, actor domain.Actor) ([]*domain.Notification, error) {
	list, err := s.notifications.ListByUser(ctx, actor.ID)
	if err != nil {
		s.logger.Error("failed to list notifications",
			logger.String("user_id", actor.ID),
			logger.String("error", err.Error()),
		)
		return []*domain.Notification{}, nil
	}
	return list, nil
}

func (s *FeedService) MarkRead(ctx context.Context, actor domain.Actor, id string) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	if err = s.guard.CanPerform(actor, authz.ActionReadNotification, n); err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err = s.notifications.MarkRead(ctx, id); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	n.IsRead = true
	return n, nil
}

func (s *FeedService) ListActivities(ctx context.Context, actor domain.Actor, filter domain.ActivityFilter) ([]*domain.Activity, error) {
	if err := s.guard.CanPerform(actor, authz.ActionViewActivity, nil); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	list, err := s.activities.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list activities", logger.String("error", err.Error()))
		return []*domain.Activity{}, nil
	}
	return list, nil
}
