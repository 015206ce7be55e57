package service

import (
	"context"
	"time"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// TokenIssuer signs credentials for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, email string, role domain.UserRole, now time.Time) (string, time.Time, error)
}

// AuthService coordinates signup and signin flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, now: time.Now}
}

// Signup creates an account and returns its bearer credential.
func (s *AuthService) Signup(ctx context.Context, email, password, roleName string) (string, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errorutil.NewInvalidRequest("email already registered")
	}

	role, err := domain.ParseUserRole(roleName)
	if err != nil {
		return "", errorutil.NewInvalidRequest("invalid user role")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", errorutil.NewInternalError(err)
	}

	user := &domain.User{Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}
	return s.issue(user)
}

// Signin checks the password and returns a fresh bearer credential.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return "", errorutil.NewInvalidRequest("user not registered")
		}
		return "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", errorutil.NewUnauthorized("invalid password")
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (string, error) {
	token, _, err := s.tokens.Issue(user.ID, user.Email, user.Role, s.now())
	if err != nil {
		return "", errorutil.NewInternalError(err)
	}
	return auth.BearerValue(token), nil
}
