package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

const testCost = bcrypt.MinCost

func requireDomainError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var de *errorutil.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	require.Equal(t, status, de.HTTPStatus)
	require.Equal(t, message, de.Message)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, testCost)
	require.NoError(t, err)
	return hash
}
