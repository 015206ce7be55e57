package service

import (
	"context"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// UserService serves account lookups and password changes.
type UserService struct {
	users      repository.UserRepository
	reader     *UserReader
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, reader: NewUserReader(users), bcryptCost: bcryptCost}
}

// GetUser returns the account with id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.reader.Get(ctx, id)
}

// ChangePassword replaces the caller's password after checking the current one.
// Password policy on newPassword is enforced at the request boundary.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.reader.Get(ctx, userID)
	if err != nil {
		return err
	}

	if auth.ComparePassword(user.PasswordHash, newPassword) == nil {
		return errorutil.NewInvalidRequest("new password must differ from the current password")
	}
	if auth.ComparePassword(user.PasswordHash, oldPassword) != nil {
		return errorutil.NewInvalidRequest("incorrect password")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return errorutil.NewInternalError(err)
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}
