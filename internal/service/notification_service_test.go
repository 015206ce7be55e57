package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository/memory"
	"github.com/spec-kit/todo-service/internal/events"
)

func TestRoleChangeNotificationWarnsAboutIssuedCredentials(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	NewNotificationService(dispatcher, zap.New(core)).RegisterHandlers()

	users := memory.NewUsers(domain.User{ID: 7, Role: domain.UserRoleAdmin})
	_, err := NewUserAdminService(users, dispatcher).ChangeUserRole(context.Background(), 42, 7, "USER")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("UserRoleChanged").Len())
	warn := logs.FilterMessage("issued credentials keep the previous role until they expire").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "ADMIN", warn[0].ContextMap()["old_role"])
}
