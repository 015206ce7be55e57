package dto

import (
	"time"

	"github.com/spec-kit/todo-service/internal/domain"
)

// TodoPath identifies a todo in the route.
type TodoPath struct {
	TodoID int64 `params:"todoId" validate:"required"`
}

// TodoSaveRequest payload for POST /todos.
type TodoSaveRequest struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// TodoResponse is the public view of a todo. User is nil once the owner is gone.
type TodoResponse struct {
	ID         int64         `json:"id"`
	Title      string        `json:"title"`
	Contents   string        `json:"contents"`
	User       *UserResponse `json:"user"`
	CreatedAt  time.Time     `json:"createdAt"`
	ModifiedAt time.Time     `json:"modifiedAt"`
}

// NewTodoResponse maps the domain model.
func NewTodoResponse(t domain.Todo) TodoResponse {
	resp := TodoResponse{
		ID:         t.ID,
		Title:      t.Title,
		Contents:   t.Contents,
		CreatedAt:  t.CreatedAt,
		ModifiedAt: t.ModifiedAt,
	}
	if t.Owner != nil {
		owner := NewUserResponse(*t.Owner)
		resp.User = &owner
	}
	return resp
}
