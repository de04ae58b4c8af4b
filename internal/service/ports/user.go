package ports

import (
	"context"

	"github.com/stpnv0/EventMarket/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByLegacyProfileID(ctx context.Context, profileID string) (*domain.User, error)
	// UpdateStatus writes to only if the stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to domain.UserStatus) error
}

// OwnerResolver maps any identifier a client may present for a user
// (user id or legacy profile id) to the canonical user id.
type OwnerResolver interface {
	ResolveOwnerID(ctx context.Context, actorID string) (string, error)
}
