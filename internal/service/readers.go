package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// Not-found messages shared by the services.
const (
	MsgUserNotFound    = "user not found"
	MsgTodoNotFound    = "todo not found"
	MsgCommentNotFound = "comment not found"
	MsgManagerNotFound = "manager not found"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// UserReader loads users, turning a missing row into a 400 with a caller-chosen message.
type UserReader struct {
	users repository.UserRepository
}

// NewUserReader wraps a user repository.
func NewUserReader(users repository.UserRepository) *UserReader {
	return &UserReader{users: users}
}

// Get returns the user or an invalid request error carrying MsgUserNotFound.
func (r *UserReader) Get(ctx context.Context, id int64) (*domain.User, error) {
	return r.GetOr(ctx, id, MsgUserNotFound)
}

// GetOr returns the user or an invalid request error carrying msg.
func (r *UserReader) GetOr(ctx context.Context, id int64, msg string) (*domain.User, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, errorutil.NewInvalidRequest(msg)
		}
		return nil, err
	}
	return user, nil
}

// TodoReader loads todos, turning a missing row into a 400.
type TodoReader struct {
	todos repository.TodoRepository
}

// NewTodoReader wraps a todo repository.
func NewTodoReader(todos repository.TodoRepository) *TodoReader {
	return &TodoReader{todos: todos}
}

// Get returns the todo or an invalid request error carrying MsgTodoNotFound.
func (r *TodoReader) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, err := r.todos.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, errorutil.NewInvalidRequest(MsgTodoNotFound)
		}
		return nil, err
	}
	return todo, nil
}

// MustExist fails with MsgTodoNotFound unless the todo exists.
func (r *TodoReader) MustExist(ctx context.Context, id int64) error {
	exists, err := r.todos.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return errorutil.NewInvalidRequest(MsgTodoNotFound)
	}
	return nil
}
