package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserRole is the closed set of roles carried by credentials.
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// ParseUserRole resolves a role name case-insensitively.
func ParseUserRole(name string) (UserRole, error) {
	switch role := UserRole(strings.ToUpper(strings.TrimSpace(name))); role {
	case UserRoleUser, UserRoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("unknown user role %q", name)
	}
}

// User is the domain model for accounts that own todos.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	ModifiedAt   time.Time
}
