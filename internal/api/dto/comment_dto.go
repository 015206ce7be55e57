package dto

import "github.com/spec-kit/todo-service/internal/domain"

// CommentPath identifies a comment in the route.
type CommentPath struct {
	CommentID int64 `params:"commentId" validate:"required"`
}

// CommentSaveRequest payload for POST /todos/:todoId/comments.
type CommentSaveRequest struct {
	Contents string `json:"contents" validate:"required"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID       int64        `json:"id"`
	Contents string       `json:"contents"`
	User     UserResponse `json:"user"`
}

// NewCommentResponse maps the domain model.
func NewCommentResponse(c domain.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Contents: c.Contents, User: NewUserResponse(c.Author)}
}
