package service

import (
	"context"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
)

// TodoService creates and lists todos.
type TodoService struct {
	todos  repository.TodoRepository
	reader *TodoReader
}

// NewTodoService builds the service.
func NewTodoService(todos repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos, reader: NewTodoReader(todos)}
}

// SaveTodo stores a todo owned by owner.
func (s *TodoService) SaveTodo(ctx context.Context, owner domain.User, title, contents string) (*domain.Todo, error) {
	todo := &domain.Todo{Title: title, Contents: contents, Owner: &owner}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// GetTodos returns one page of todos, most recently modified first, and the total count.
func (s *TodoService) GetTodos(ctx context.Context, limit, offset int) ([]domain.Todo, int64, error) {
	return s.todos.List(ctx, limit, offset)
}

// GetTodo returns a single todo.
func (s *TodoService) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.reader.Get(ctx, id)
}
