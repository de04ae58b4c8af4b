package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventMarket/internal/authz"
	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stpnv0/EventMarket/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

type UserService struct {
	repo       ports.UserRepo
	resolver   ports.OwnerResolver
	guard      ports.Guard
	dispatcher ports.EffectDispatcher
	logger     logger.Logger
	now        func() time.Time
}

func NewUserService(
	repo ports.UserRepo,
	resolver ports.OwnerResolver,
	guard ports.Guard,
	dispatcher ports.EffectDispatcher,
	logger logger.Logger,
) *UserService {
	return &UserService{
		repo:       repo,
		resolver:   resolver,
		guard:      guard,
		dispatcher: dispatcher,
		logger:     logger,
		now:        utcNow,
	}
}

// Register creates a marketplace participant. Roles are fixed here:
// staff accounts are never created through self-service, and providers
// wait for approval.
func (s *UserService) Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	var status domain.UserStatus
	switch input.Role {
	case domain.RoleCustomer:
		status = domain.UserStatusActive
	case domain.RoleProvider:
		status = domain.UserStatusPending
	case domain.RoleAdmin, domain.RoleEmployee:
		return nil, domain.ErrForbidden
	default:
		return nil, fmt.Errorf("%w: role must be customer or provider", domain.ErrValidation)
	}

	now := s.now()
	user := &domain.User{
		ID:             uuid.New().String(),
		Email:          email,
		Name:           strings.TrimSpace(input.Name),
		Role:           input.Role,
		Status:         status,
		TelegramChatID: input.TelegramChatID,
		CreatedAt:      now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered",
		logger.String("user_id", user.ID),
		logger.String("role", string(user.Role)),
	)

	var effects domain.Effects
	effects.Record(newActivity(user.ID, domain.ActivityUserRegistered, domain.EntityUser, user.ID,
		fmt.Sprintf("Registered as %s", user.Role), now))
	s.dispatcher.Dispatch(ctx, effects)

	return user, nil
}

// EnsureAdmin creates the bootstrap admin account unless a user with that
// email already exists. It is the only way staff accounts come into being.
func (s *UserService) EnsureAdmin(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: admin email is invalid", domain.ErrValidation)
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: %s belongs to a %s", domain.ErrEmailTaken, email, existing.Role)
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	admin := &domain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      domain.RoleAdmin,
		Status:    domain.UserStatusActive,
		CreatedAt: s.now(),
	}
	if err = s.repo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("bootstrap admin created", logger.String("user_id", admin.ID))
	return admin, nil
}

// Actor turns an authenticated identifier into the workflow actor. Only
// active users and admins are admitted.
func (s *UserService) Actor(ctx context.Context, id string) (domain.Actor, error) {
	canonical, err := s.resolver.ResolveOwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Actor{}, domain.ErrUnauthenticated
		}
		return domain.Actor{}, fmt.Errorf("resolve owner: %w", err)
	}

	user, err := s.repo.GetByID(ctx, canonical)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Actor{}, domain.ErrUnauthenticated
		}
		return domain.Actor{}, fmt.Errorf("get user: %w", err)
	}
	if !user.CanAuthenticate() {
		return domain.Actor{}, domain.ErrForbidden
	}
	return user.Actor(), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus approves, rejects or deactivates an account.
func (s *UserService) SetStatus(ctx context.Context, actor domain.Actor, userID string, next domain.UserStatus) (*domain.User, error) {
	if err := s.guard.CanPerform(actor, authz.ActionManageUsers, nil); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Status == next {
		return user, nil
	}

	prev := user.Status
	if err = s.repo.UpdateStatus(ctx, userID, prev, next); err != nil {
		return nil, fmt.Errorf("update user status: %w", err)
	}
	user.Status = next

	var effects domain.Effects
	effects.Record(newActivity(actor.ID, domain.ActivityUserStatus, domain.EntityUser, userID,
		fmt.Sprintf("User status changed from %s to %s", prev, next), s.now()))
	s.dispatcher.Dispatch(ctx, effects)

	return user, nil
}

// OwnerResolver accepts either a user id or the legacy profile id linked
// to a user and returns the canonical user id.
type OwnerResolver struct {
	repo ports.UserRepo
}

func NewOwnerResolver(repo ports.UserRepo) *OwnerResolver {
	return &OwnerResolver{repo: repo}
}

func (r *OwnerResolver) ResolveOwnerID(ctx context.Context, actorID string) (string, error) {
	if actorID == "" {
		return "", domain.ErrUserNotFound
	}

	user, err := r.repo.GetByID(ctx, actorID)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	user, err = r.repo.GetByLegacyProfileID(ctx, actorID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
