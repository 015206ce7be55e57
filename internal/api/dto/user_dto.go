package dto

import "github.com/spec-kit/todo-service/internal/domain"

// UserPath identifies a user in the route.
type UserPath struct {
	UserID int64 `params:"userId" validate:"required"`
}

// UserChangePasswordRequest payload for PUT /users.
type UserChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// UserRoleChangeRequest payload for PATCH /admin/users/:userId.
type UserRoleChangeRequest struct {
	Role string `json:"role" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UserRoleResponse is returned after an admin role change.
type UserRoleResponse struct {
	ID       int64           `json:"id"`
	Email    string          `json:"email"`
	UserRole domain.UserRole `json:"userRole"`
}

// NewUserResponse maps the domain model.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}
