package service

import (
	"context"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// CommentService manages comments on todos.
type CommentService struct {
	comments repository.CommentRepository
	todos    *TodoReader
}

// NewCommentService builds the service.
func NewCommentService(comments repository.CommentRepository, todos repository.TodoRepository) *CommentService {
	return &CommentService{comments: comments, todos: NewTodoReader(todos)}
}

// SaveComment adds a comment by author to todoID.
func (s *CommentService) SaveComment(ctx context.Context, author domain.User, todoID int64, contents string) (*domain.Comment, error) {
	if err := s.todos.MustExist(ctx, todoID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{Contents: contents, TodoID: todoID, Author: author}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments lists the comments of todoID oldest first.
func (s *CommentService) GetComments(ctx context.Context, todoID int64) ([]domain.Comment, error) {
	return s.comments.ListByTodo(ctx, todoID)
}

// CommentAdminService performs privileged comment moderation.
type CommentAdminService struct {
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// NewCommentAdminService builds the service. dispatcher may be nil.
func NewCommentAdminService(comments repository.CommentRepository, dispatcher events.Dispatcher) *CommentAdminService {
	return &CommentAdminService{comments: comments, dispatcher: dispatcher}
}

// DeleteComment removes a comment regardless of its author.
func (s *CommentAdminService) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		if isNoRows(err) {
			return errorutil.NewInvalidRequest(MsgCommentNotFound)
		}
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventCommentDeleted, actorID,
			events.CommentDeletedPayload{CommentID: commentID}))
	}
	return nil
}
