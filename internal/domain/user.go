package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleEmployee, RoleCustomer, RoleProvider:
		return r, true
	}
	return "", false
}

// IsStaff reports whether the role belongs to the marketplace operator.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusPending  UserStatus = "pending"
	UserStatusRejected UserStatus = "rejected"
	UserStatusInactive UserStatus = "inactive"
)

func ParseUserStatus(s string) (UserStatus, bool) {
	switch st := UserStatus(s); st {
	case UserStatusActive, UserStatusPending, UserStatusRejected, UserStatusInactive:
		return st, true
	}
	return "", false
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	// Status gates authentication: only active users (and admins) get an Actor.
	Status UserStatus `json:"status"`
	// LegacyProfileID is the id of the pre-migration customer/provider
	// profile row. Old clients still address users through it.
	LegacyProfileID *string   `json:"legacy_profile_id,omitempty"`
	TelegramChatID  *int64    `json:"telegram_chat_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CanAuthenticate reports whether the user may act in the marketplace.
func (u *User) CanAuthenticate() bool {
	return u.Role == RoleAdmin || u.Status == UserStatusActive
}

// Actor is the authenticated caller of a workflow operation. ID is always
// the canonical user id.
type Actor struct {
	ID     string
	Role   Role
	Status UserStatus
}

func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, Status: u.Status}
}

type RegisterUserInput struct {
	Email          string
	Name           string
	Role           Role
	TelegramChatID *int64
}
