package auth

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/domain"
)

// Request-scoped attribute keys the gate sets after verification.
const (
	LocalUserID   = "userId"
	LocalEmail    = "email"
	LocalUserRole = "userRole"
)

// IdentityMarker is the struct tag value declaring a handler input field as
// the slot for the verified caller identity: `bind:"identity"`.
const IdentityMarker = "identity"

// Wiring errors returned by Supports.
var (
	ErrIdentityMarkerType = errors.New("identity marker on a field that is not auth.Identity")
	ErrUnmarkedIdentity   = errors.New("auth.Identity field without identity marker")
	ErrIdentityMissing    = errors.New("no verified identity on request")
)

// Identity is the caller verified by the gate for a single request.
type Identity struct {
	UserID int64           `json:"userId"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"userRole"`
}

var identityType = reflect.TypeOf(Identity{})

// Supports reports whether a handler input field receives the verified
// identity. A marker on the wrong type, or an Identity field without the
// marker, is a programming error reported at wiring time.
func Supports(field reflect.StructField) (bool, error) {
	marked := field.Tag.Get("bind") == IdentityMarker
	typed := field.Type == identityType

	switch {
	case marked && typed:
		return true, nil
	case marked:
		return false, fmt.Errorf("field %s (%s): %w", field.Name, field.Type, ErrIdentityMarkerType)
	case typed:
		return false, fmt.Errorf("field %s: %w", field.Name, ErrUnmarkedIdentity)
	default:
		return false, nil
	}
}

// Resolve rebuilds the identity from the attributes the gate stored on c.
// It performs no verification; the gate is trusted to have run first.
func Resolve(c *fiber.Ctx) (Identity, error) {
	userID, ok := c.Locals(LocalUserID).(int64)
	if !ok {
		return Identity{}, ErrIdentityMissing
	}
	email, _ := c.Locals(LocalEmail).(string)
	role, ok := c.Locals(LocalUserRole).(string)
	if !ok {
		return Identity{}, ErrIdentityMissing
	}
	return Identity{UserID: userID, Email: email, Role: domain.UserRole(role)}, nil
}

func inject(c *fiber.Ctx, id Identity) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalEmail, id.Email)
	c.Locals(LocalUserRole, string(id.Role))
}
