package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	tests := []struct {
		input string
		want  UserRole
	}{
		{"USER", UserRoleUser},
		{"user", UserRoleUser},
		{" Admin ", UserRoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUserRole(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseUserRole("SUPERUSER")
	assert.Error(t, err)
}

func TestTodoOwnedBy(t *testing.T) {
	todo := &Todo{Owner: &User{ID: 1}}
	assert.True(t, todo.OwnedBy(1))
	assert.False(t, todo.OwnedBy(2))
	assert.False(t, (&Todo{}).OwnedBy(1))
}
