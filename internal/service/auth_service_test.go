package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository/memory"
)

var t0 = time.Unix(1_700_000_000, 0)

func newAuthService(t *testing.T, users *memory.Users) (*AuthService, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("service-test-secret", time.Hour)
	require.NoError(t, err)
	svc := NewAuthService(users, tm, testCost)
	svc.now = func() time.Time { return t0 }
	return svc, tm
}

func verifyBearer(t *testing.T, tm *auth.TokenManager, bearer string) auth.Identity {
	t.Helper()
	token, ok := strings.CutPrefix(bearer, "Bearer ")
	require.True(t, ok, "bearer prefix missing in %q", bearer)
	id, err := tm.Verify(token, t0.Add(time.Second))
	require.NoError(t, err)
	return id
}

func TestSignupIssuesCredentialForNewUser(t *testing.T) {
	users := memory.NewUsers()
	svc, tm := newAuthService(t, users)

	bearer, err := svc.Signup(context.Background(), "a@b.com", "Passw0rd!", "admin")
	require.NoError(t, err)

	id := verifyBearer(t, tm, bearer)
	assert.Equal(t, auth.Identity{UserID: 1, Email: "a@b.com", Role: domain.UserRoleAdmin}, id)

	stored, err := users.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "Passw0rd!"))
}

func TestSignupRejectsDuplicateEmailAndUnknownRole(t *testing.T) {
	users := memory.NewUsers(domain.User{ID: 1, Email: "a@b.com", Role: domain.UserRoleUser})
	svc, _ := newAuthService(t, users)

	_, err := svc.Signup(context.Background(), "a@b.com", "Passw0rd!", "USER")
	requireDomainError(t, err, http.StatusBadRequest, "email already registered")

	_, err = svc.Signup(context.Background(), "new@b.com", "Passw0rd!", "ROOT")
	requireDomainError(t, err, http.StatusBadRequest, "invalid user role")
}

func TestSignin(t *testing.T) {
	users := memory.NewUsers(domain.User{ID: 42, Email: "a@b.com", PasswordHash: mustHash(t, "Passw0rd!"), Role: domain.UserRoleUser})
	svc, tm := newAuthService(t, users)
	ctx := context.Background()

	bearer, err := svc.Signin(ctx, "a@b.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, int64(42), verifyBearer(t, tm, bearer).UserID)

	_, err = svc.Signin(ctx, "nobody@b.com", "Passw0rd!")
	requireDomainError(t, err, http.StatusBadRequest, "user not registered")

	_, err = svc.Signin(ctx, "a@b.com", "wrong")
	requireDomainError(t, err, http.StatusUnauthorized, "invalid password")
}
