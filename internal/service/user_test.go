package service

import (
	"context"
	"testing"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name       string
		input      domain.RegisterUserInput
		wantStatus domain.UserStatus
		wantErr    error
	}{
		{
			name:       "customer is active immediately",
			input:      domain.RegisterUserInput{Email: "Anna@Example.com ", Name: "Anna", Role: domain.RoleCustomer},
			wantStatus: domain.UserStatusActive,
		},
		{
			name:       "provider waits for approval",
			input:      domain.RegisterUserInput{Email: "dj@example.com", Name: "DJ", Role: domain.RoleProvider},
			wantStatus: domain.UserStatusPending,
		},
		{
			name:    "staff roles are not self-service",
			input:   domain.RegisterUserInput{Email: "boss@example.com", Name: "Boss", Role: domain.RoleAdmin},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "unknown role",
			input:   domain.RegisterUserInput{Email: "x@example.com", Name: "X", Role: "guest"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad email",
			input:   domain.RegisterUserInput{Email: "not-an-email", Name: "X", Role: domain.RoleCustomer},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "empty name",
			input:   domain.RegisterUserInput{Email: "y@example.com", Name: "  ", Role: domain.RoleCustomer},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			user, err := f.users.Register(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, user.Status)
			assert.NotEmpty(t, user.ID)
		})
	}
}

func TestUserService_Register_NormalizesAndRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, domain.RegisterUserInput{Email: " Anna@Example.COM", Name: "Anna", Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)

	_, err = f.users.Register(ctx, domain.RegisterUserInput{Email: "anna@example.com", Name: "Other", Role: domain.RoleProvider})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserService_Actor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	legacy := "profile-42"
	require.NoError(t, f.store.Users().Create(ctx, &domain.User{
		ID:              "customer-legacy",
		Email:           "legacy@example.com",
		Name:            "Legacy",
		Role:            domain.RoleCustomer,
		Status:          domain.UserStatusActive,
		LegacyProfileID: &legacy,
	}))
	f.seedUser(t, "provider-pending", domain.RoleProvider, domain.UserStatusPending)
	f.seedUser(t, "admin-inactive", domain.RoleAdmin, domain.UserStatusInactive)

	actor, err := f.users.Actor(ctx, "customer-1")
	require.NoError(t, err)
	assert.Equal(t, f.customer, actor)

	actor, err = f.users.Actor(ctx, legacy)
	require.NoError(t, err)
	assert.Equal(t, "customer-legacy", actor.ID, "legacy profile id resolves to the user id")

	_, err = f.users.Actor(ctx, "provider-pending")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.users.Actor(ctx, "admin-inactive")
	assert.NoError(t, err, "admins are admitted regardless of status")

	_, err = f.users.Actor(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.users.Actor(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUserService_SetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	provider, err := f.users.Register(ctx, domain.RegisterUserInput{Email: "dj@example.com", Name: "DJ", Role: domain.RoleProvider})
	require.NoError(t, err)

	_, err = f.users.SetStatus(ctx, f.employee, provider.ID, domain.UserStatusActive)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.users.Actor(ctx, provider.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.users.SetStatus(ctx, f.admin, provider.ID, domain.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, updated.Status)

	actor, err := f.users.Actor(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleProvider, actor.Role)

	_, err = f.users.SetStatus(ctx, f.admin, "missing", domain.UserStatusActive)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.users.EnsureAdmin(ctx, "Root@Example.com", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)
	assert.Equal(t, "Administrator", first.Name)

	again, err := f.users.EnsureAdmin(ctx, "root@example.com", "Someone else")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = f.users.EnsureAdmin(ctx, "customer-1@example.com", "")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = f.users.EnsureAdmin(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
