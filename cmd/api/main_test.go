package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository/memory"
)

func TestReadinessDepsWithoutPostgres(t *testing.T) {
	redis := &persistence.Redis{}
	deps := readinessDeps(&persistence.Postgres{}, redis)

	assert.NotContains(t, deps, "postgres")
	require.Contains(t, deps, "redis")
	assert.Same(t, redis, deps["redis"])
}

func TestNewRepositoriesFallsBackToMemory(t *testing.T) {
	users, todos, comments, managers := newRepositories(&persistence.Postgres{}, zap.NewNop())

	assert.IsType(t, &memory.Users{}, users)
	assert.IsType(t, &memory.Todos{}, todos)
	assert.IsType(t, &memory.Comments{}, comments)
	assert.IsType(t, &memory.Managers{}, managers)

	_, err := users.GetByEmail(context.Background(), "nobody@b.com")
	assert.Error(t, err)
}
