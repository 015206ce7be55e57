package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/api/http/bind"
	"github.com/spec-kit/todo-service/internal/audit"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/service"
)

// AdminHandler exposes endpoints under the admin prefix.
type AdminHandler struct {
	users    *service.UserAdminService
	comments *service.CommentAdminService
	trail    audit.Reader
}

// NewAdminHandler constructs handler. trail may be nil when audit review is disabled.
func NewAdminHandler(users *service.UserAdminService, comments *service.CommentAdminService, trail audit.Reader) *AdminHandler {
	return &AdminHandler{users: users, comments: comments, trail: trail}
}

// ChangeUserRoleInput is decoded for PATCH /admin/users/:userId.
type ChangeUserRoleInput struct {
	Caller auth.Identity             `bind:"identity"`
	Path   dto.UserPath              `bind:"params"`
	Body   dto.UserRoleChangeRequest `bind:"body"`
}

// ChangeUserRole handles PATCH /admin/users/:userId.
func (h *AdminHandler) ChangeUserRole(c *fiber.Ctx, in *ChangeUserRoleInput) (dto.UserRoleResponse, error) {
	user, err := h.users.ChangeUserRole(c.UserContext(), in.Caller.UserID, in.Path.UserID, in.Body.Role)
	if err != nil {
		return dto.UserRoleResponse{}, err
	}
	return dto.UserRoleResponse{ID: user.ID, Email: user.Email, UserRole: user.Role}, nil
}

// DeleteCommentInput is decoded for DELETE /admin/comments/:commentId.
type DeleteCommentInput struct {
	Caller auth.Identity   `bind:"identity"`
	Path   dto.CommentPath `bind:"params"`
}

// DeleteComment handles DELETE /admin/comments/:commentId.
func (h *AdminHandler) DeleteComment(c *fiber.Ctx, in *DeleteCommentInput) (bind.Empty, error) {
	return bind.Empty{}, h.comments.DeleteComment(c.UserContext(), in.Caller.UserID, in.Path.CommentID)
}

// AuditTrailInput is decoded for GET /admin/audit.
type AuditTrailInput struct {
	Query dto.AuditQuery `bind:"query"`
}

// AuditTrail handles GET /admin/audit, newest entries first.
func (h *AdminHandler) AuditTrail(c *fiber.Ctx, in *AuditTrailInput) ([]audit.Entry, error) {
	if h.trail == nil {
		return []audit.Entry{}, nil
	}
	limit := in.Query.Limit
	if limit == 0 {
		limit = 50
	}
	entries, err := h.trail.Recent(c.UserContext(), limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	return entries, nil
}
