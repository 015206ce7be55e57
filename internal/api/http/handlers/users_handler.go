package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/api/http/bind"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/service"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// GetUserInput is decoded for GET /users/:userId.
type GetUserInput struct {
	Path dto.UserPath `bind:"params"`
}

// GetUser handles GET /users/:userId.
func (h *UsersHandler) GetUser(c *fiber.Ctx, in *GetUserInput) (dto.UserResponse, error) {
	user, err := h.users.GetUser(c.UserContext(), in.Path.UserID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(*user), nil
}

// ChangePasswordInput is decoded for PUT /users.
type ChangePasswordInput struct {
	Caller auth.Identity                 `bind:"identity"`
	Body   dto.UserChangePasswordRequest `bind:"body"`
}

// ChangePassword handles PUT /users.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx, in *ChangePasswordInput) (bind.Empty, error) {
	return bind.Empty{}, h.users.ChangePassword(c.UserContext(), in.Caller.UserID, in.Body.OldPassword, in.Body.NewPassword)
}
