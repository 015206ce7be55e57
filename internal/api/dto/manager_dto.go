package dto

import "github.com/spec-kit/todo-service/internal/domain"

// ManagerPath identifies a manager assignment of a todo.
type ManagerPath struct {
	TodoID    int64 `params:"todoId" validate:"required"`
	ManagerID int64 `params:"managerId" validate:"required"`
}

// ManagerSaveRequest payload for POST /todos/:todoId/managers.
type ManagerSaveRequest struct {
	ManagerUserID int64 `json:"managerUserId" validate:"required"`
}

// ManagerResponse is the public view of a manager assignment.
type ManagerResponse struct {
	ID   int64        `json:"id"`
	User UserResponse `json:"user"`
}

// NewManagerResponse maps the domain model.
func NewManagerResponse(m domain.Manager) ManagerResponse {
	return ManagerResponse{ID: m.ID, User: NewUserResponse(m.User)}
}
