package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrUserDeactivated = errors.New("your account has been deactivated")
	ErrNotAnOfficer    = errors.New("user is not a field officer")
)

type User struct {
	ID                    uuid.UUID  `json:"id" db:"user_id"`
	FirstName             string     `json:"first_name" db:"first_name"`
	LastName              string     `json:"last_name" db:"last_name"`
	Email                 string     `json:"email" db:"email"`
	Phone                 string     `json:"phone" db:"phone"`
	PasswordHash          string     `json:"-" db:"password_hash"`
	Role                  UserRole   `json:"role" db:"role"`
	DepartmentID          *uuid.UUID `json:"department_id" db:"department_id"`
	IsActive              bool       `json:"is_active" db:"is_active"`
	IsVerified            bool       `json:"is_verified" db:"is_verified"`
	CanCreateAnnouncement bool       `json:"can_create_announcement" db:"can_create_announcement"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`

	Department *DepartmentRef `json:"department,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserRole string

const (
	RoleCitizen UserRole = "citizen"
	RoleOfficer UserRole = "officer"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasAnyRole reports whether the user's role is in the given set. Roles
// are flat: an officer is not a citizen and an admin is not an officer.
func (u *User) HasAnyRole(roles ...UserRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

type RegisterInput struct {
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Password        string     `json:"password"`
	ConfirmPassword string     `json:"confirm_password"`
	Role            UserRole   `json:"role"`
	DepartmentID    *uuid.UUID `json:"department_id"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserInput struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         UserRole   `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserFilter struct {
	Role         *UserRole
	DepartmentID *uuid.UUID
	ActiveOnly   bool
}
