package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/service"
)

// CommentsHandler exposes comment endpoints nested under a todo.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// SaveCommentInput is decoded for POST /todos/:todoId/comments.
type SaveCommentInput struct {
	Caller auth.Identity          `bind:"identity"`
	Path   dto.TodoPath           `bind:"params"`
	Body   dto.CommentSaveRequest `bind:"body"`
}

// SaveComment handles POST /todos/:todoId/comments.
func (h *CommentsHandler) SaveComment(c *fiber.Ctx, in *SaveCommentInput) (dto.CommentResponse, error) {
	author := domain.User{ID: in.Caller.UserID, Email: in.Caller.Email, Role: in.Caller.Role}
	comment, err := h.comments.SaveComment(c.UserContext(), author, in.Path.TodoID, in.Body.Contents)
	if err != nil {
		return dto.CommentResponse{}, err
	}
	return dto.NewCommentResponse(*comment), nil
}

// ListCommentsInput is decoded for GET /todos/:todoId/comments.
type ListCommentsInput struct {
	Path dto.TodoPath `bind:"params"`
}

// ListComments handles GET /todos/:todoId/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx, in *ListCommentsInput) ([]dto.CommentResponse, error) {
	comments, err := h.comments.GetComments(c.UserContext(), in.Path.TodoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, dto.NewCommentResponse(cm))
	}
	return out, nil
}
