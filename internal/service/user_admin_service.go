package service

import (
	"context"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// UserAdminService performs privileged account changes.
type UserAdminService struct {
	users      repository.UserRepository
	reader     *UserReader
	dispatcher events.Dispatcher
}

// NewUserAdminService builds the service. dispatcher may be nil.
func NewUserAdminService(users repository.UserRepository, dispatcher events.Dispatcher) *UserAdminService {
	return &UserAdminService{users: users, reader: NewUserReader(users), dispatcher: dispatcher}
}

// ChangeUserRole sets the role of userID. Credentials already issued keep the
// role they were signed with until they expire.
func (s *UserAdminService) ChangeUserRole(ctx context.Context, actorID, userID int64, roleName string) (*domain.User, error) {
	role, err := domain.ParseUserRole(roleName)
	if err != nil {
		return nil, errorutil.NewInvalidRequest("invalid user role")
	}

	user, err := s.reader.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && oldRole != role {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserRoleChanged, actorID, events.UserRoleChangedPayload{
			UserID:  user.ID,
			OldRole: oldRole,
			NewRole: role,
		}))
	}
	return user, nil
}
