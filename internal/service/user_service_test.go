package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository/memory"
	"github.com/spec-kit/todo-service/internal/events"
)

func TestGetUserUnknown(t *testing.T) {
	svc := NewUserService(memory.NewUsers(), testCost)
	_, err := svc.GetUser(context.Background(), 7)
	requireDomainError(t, err, http.StatusBadRequest, MsgUserNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers(domain.User{ID: 1, Email: "a@b.com", PasswordHash: mustHash(t, "OldPassw0rd"), Role: domain.UserRoleUser})
	svc := NewUserService(users, testCost)

	err := svc.ChangePassword(ctx, 1, "OldPassw0rd", "OldPassw0rd")
	requireDomainError(t, err, http.StatusBadRequest, "new password must differ from the current password")

	err = svc.ChangePassword(ctx, 1, "Wrong0ne", "NewPassw0rd")
	requireDomainError(t, err, http.StatusBadRequest, "incorrect password")

	require.NoError(t, svc.ChangePassword(ctx, 1, "OldPassw0rd", "NewPassw0rd"))
	stored, err := users.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "NewPassw0rd"))
}

func TestChangeUserRole(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers(domain.User{ID: 7, Email: "u@b.com", Role: domain.UserRoleUser})
	dispatcher := &recordingDispatcher{}
	svc := NewUserAdminService(users, dispatcher)

	_, err := svc.ChangeUserRole(ctx, 42, 7, "OWNER")
	requireDomainError(t, err, http.StatusBadRequest, "invalid user role")

	_, err = svc.ChangeUserRole(ctx, 42, 8, "ADMIN")
	requireDomainError(t, err, http.StatusBadRequest, MsgUserNotFound)

	user, err := svc.ChangeUserRole(ctx, 42, 7, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)

	require.Len(t, dispatcher.published, 1)
	ev := dispatcher.published[0]
	assert.Equal(t, events.EventUserRoleChanged, ev.Type)
	assert.Equal(t, int64(42), ev.ActorID)
	assert.Equal(t, events.UserRoleChangedPayload{UserID: 7, OldRole: domain.UserRoleUser, NewRole: domain.UserRoleAdmin}, ev.Payload)

	_, err = svc.ChangeUserRole(ctx, 42, 7, "ADMIN")
	require.NoError(t, err)
	assert.Len(t, dispatcher.published, 1, "no event when the role is unchanged")
}
