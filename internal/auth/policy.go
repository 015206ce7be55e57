package auth

import (
	"strings"

	"github.com/spec-kit/todo-service/internal/domain"
)

// RoutePolicy decides which paths skip credential checks and which require ADMIN.
// It is built once at startup and never mutated.
type RoutePolicy struct {
	ExemptPrefix string
	AdminPrefix  string
}

// DefaultRoutePolicy exempts credential issuance endpoints and guards /admin.
func DefaultRoutePolicy() RoutePolicy {
	return RoutePolicy{ExemptPrefix: "/auth", AdminPrefix: "/admin"}
}

// IsExempt reports whether the gate must forward path without any credential work.
func (p RoutePolicy) IsExempt(path string) bool {
	return hasPrefixFold(path, p.ExemptPrefix)
}

// RequiredRole returns the role path demands, or false when any valid credential suffices.
func (p RoutePolicy) RequiredRole(path string) (domain.UserRole, bool) {
	if hasPrefixFold(path, p.AdminPrefix) {
		return domain.UserRoleAdmin, true
	}
	return "", false
}

// Allows reports whether role may access path.
func (p RoutePolicy) Allows(path string, role domain.UserRole) bool {
	required, restricted := p.RequiredRole(path)
	return !restricted || role == required
}

// fiber routes case-insensitively by default, so prefixes must match the same way.
func hasPrefixFold(path, prefix string) bool {
	return prefix != "" && len(path) >= len(prefix) && strings.EqualFold(path[:len(prefix)], prefix)
}
