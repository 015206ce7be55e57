package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/service"
)

// TodosHandler exposes todo endpoints.
type TodosHandler struct {
	todos *service.TodoService
}

// NewTodosHandler constructs handler.
func NewTodosHandler(todos *service.TodoService) *TodosHandler {
	return &TodosHandler{todos: todos}
}

// SaveTodoInput is decoded for POST /todos.
type SaveTodoInput struct {
	Caller auth.Identity       `bind:"identity"`
	Body   dto.TodoSaveRequest `bind:"body"`
}

// SaveTodo handles POST /todos.
func (h *TodosHandler) SaveTodo(c *fiber.Ctx, in *SaveTodoInput) (dto.TodoResponse, error) {
	owner := domain.User{ID: in.Caller.UserID, Email: in.Caller.Email, Role: in.Caller.Role}
	todo, err := h.todos.SaveTodo(c.UserContext(), owner, in.Body.Title, in.Body.Contents)
	if err != nil {
		return dto.TodoResponse{}, err
	}
	return dto.NewTodoResponse(*todo), nil
}

// ListTodosInput is decoded for GET /todos.
type ListTodosInput struct {
	Query dto.PageQuery `bind:"query"`
}

// ListTodos handles GET /todos.
func (h *TodosHandler) ListTodos(c *fiber.Ctx, in *ListTodosInput) (dto.Page[dto.TodoResponse], error) {
	q := in.Query.Normalize()
	todos, total, err := h.todos.GetTodos(c.UserContext(), q.Size, q.Offset())
	if err != nil {
		return dto.Page[dto.TodoResponse]{}, err
	}
	content := make([]dto.TodoResponse, 0, len(todos))
	for _, t := range todos {
		content = append(content, dto.NewTodoResponse(t))
	}
	return dto.NewPage(content, q, total), nil
}

// GetTodoInput is decoded for GET /todos/:todoId.
type GetTodoInput struct {
	Path dto.TodoPath `bind:"params"`
}

// GetTodo handles GET /todos/:todoId.
func (h *TodosHandler) GetTodo(c *fiber.Ctx, in *GetTodoInput) (dto.TodoResponse, error) {
	todo, err := h.todos.GetTodo(c.UserContext(), in.Path.TodoID)
	if err != nil {
		return dto.TodoResponse{}, err
	}
	return dto.NewTodoResponse(*todo), nil
}
