package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/todo-service/internal/domain"
)

func TestRoutePolicy(t *testing.T) {
	p := DefaultRoutePolicy()

	assert.True(t, p.IsExempt("/auth/signin"))
	assert.True(t, p.IsExempt("/AUTH/signup"))
	assert.False(t, p.IsExempt("/todos"))
	assert.False(t, p.IsExempt("/"))

	role, restricted := p.RequiredRole("/admin/users/7")
	assert.True(t, restricted)
	assert.Equal(t, domain.UserRoleAdmin, role)

	_, restricted = p.RequiredRole("/todos/1")
	assert.False(t, restricted)

	assert.True(t, p.Allows("/todos", domain.UserRoleUser))
	assert.True(t, p.Allows("/admin/comments/1", domain.UserRoleAdmin))
	assert.False(t, p.Allows("/admin/comments/1", domain.UserRoleUser))
	assert.False(t, p.Allows("/Admin/comments/1", domain.UserRoleUser))
}

func TestRoutePolicy_EmptyPrefixesMatchNothing(t *testing.T) {
	p := RoutePolicy{}
	assert.False(t, p.IsExempt("/auth"))
	assert.True(t, p.Allows("/admin", domain.UserRoleUser))
}
