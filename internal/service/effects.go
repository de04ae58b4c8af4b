package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventMarket/internal/domain"
)

// SystemActorID authors activities no user triggered directly, such as
// lazy proposal expiry.
const SystemActorID = "system"

func utcNow() time.Time { return time.Now().UTC() }

func newActivity(
	actorID string,
	typ domain.ActivityType,
	entityType domain.EntityType,
	entityID, description string,
	at time.Time,
) domain.Activity {
	return domain.Activity{
		ID:           uuid.New().String(),
		ActorUserID:  actorID,
		ActivityType: typ,
		Description:  description,
		EntityID:     entityID,
		EntityType:   entityType,
		Timestamp:    at,
	}
}

func newNotification(
	userID string,
	typ domain.NotificationType,
	title, message, redirect string,
	at time.Time,
) domain.Notification {
	n := domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: at,
	}
	if redirect != "" {
		n.RedirectURL = &redirect
	}
	return n
}
