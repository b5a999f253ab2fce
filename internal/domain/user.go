package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Role is a permission tag attached to a user.
type Role string

// Known roles. A user always holds at least one of them.
const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// DefaultRoles is applied when a user is created without explicit roles.
var DefaultRoles = []Role{RoleEmployee}

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyRoles          = errors.New("user must have at least one role")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a person who can sign in and own notes.
// Inactive users are kept around and simply refused at login.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Roles          []Role    `json:"roles"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates an active User with the given username, password digest and roles.
// The ID is left empty; the store assigns it on creation.
func NewUser(username, hashedPassword string, roles []Role) (*User, error) {
	if len(roles) == 0 {
		roles = DefaultRoles
	}

	now := time.Now().UTC()
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		Roles:          append([]Role(nil), roles...),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.validateFields(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if a stored User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	return u.validateFields()
}

func (u *User) validateFields() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return ValidateRoles(u.Roles)
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidateRoles checks that roles is non-empty and contains only known tags.
func ValidateRoles(roles []Role) error {
	if len(roles) == 0 {
		return ErrEmptyRoles
	}
	for _, r := range roles {
		if !r.IsValid() {
			return NewValidationError("roles", "contains unknown role "+string(r), ErrInvalidRole)
		}
	}
	return nil
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// RolesFromStrings converts raw role tags to Roles without validating them.
func RolesFromStrings(raw []string) []Role {
	roles := make([]Role, len(raw))
	for i, r := range raw {
		roles[i] = Role(r)
	}
	return roles
}

// RoleStrings converts roles back to plain strings, e.g. for storage or token claims.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
