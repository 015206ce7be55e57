package auth

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/todo-service/internal/domain"
)

type projectorInput struct {
	Caller    Identity  `bind:"identity"`
	Unmarked  Identity
	WrongType string    `bind:"identity"`
	Pointer   *Identity `bind:"identity"`
	Body      struct{}  `bind:"body"`
	Plain     int
}

func field(t *testing.T, name string) reflect.StructField {
	t.Helper()
	f, ok := reflect.TypeOf(projectorInput{}).FieldByName(name)
	require.True(t, ok)
	return f
}

func TestSupports(t *testing.T) {
	ok, err := Supports(field(t, "Caller"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Supports(field(t, "Unmarked"))
	assert.ErrorIs(t, err, ErrUnmarkedIdentity)

	_, err = Supports(field(t, "WrongType"))
	assert.ErrorIs(t, err, ErrIdentityMarkerType)

	_, err = Supports(field(t, "Pointer"))
	assert.ErrorIs(t, err, ErrIdentityMarkerType)

	for _, name := range []string{"Body", "Plain"} {
		ok, err := Supports(field(t, name))
		require.NoError(t, err)
		assert.False(t, ok, name)
	}
}

func TestResolve(t *testing.T) {
	app := fiber.New()
	want := Identity{UserID: 9, Email: "nine@example.com", Role: domain.UserRoleUser}

	app.Get("/with", func(c *fiber.Ctx) error {
		inject(c, want)
		got, err := Resolve(c)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
		return c.SendStatus(http.StatusNoContent)
	})
	app.Get("/without", func(c *fiber.Ctx) error {
		_, err := Resolve(c)
		assert.ErrorIs(t, err, ErrIdentityMissing)
		return c.SendStatus(http.StatusNoContent)
	})

	for _, path := range []string{"/with", "/without"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
}
